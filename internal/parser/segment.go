package parser

import (
	"strconv"
	"strings"
)

// block is the text from one competency heading up to the next heading.
// number is the competency number written in the heading, -1 if unreadable.
type block struct {
	number int
	text   string
}

// split cuts text at the start of every heading line. The text before the
// first heading is returned as the preamble unless it only carries the total
// score line.
func split(text string) (string, []block) {
	locs := headingPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return preamble(text), nil
	}

	blocks := make([]block, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			n = -1
		}
		blocks = append(blocks, block{number: n, text: text[loc[0]:end]})
	}
	return preamble(text[:locs[0][0]]), blocks
}

func preamble(segment string) string {
	for _, line := range strings.Split(segment, "\n") {
		if totalScorePattern.MatchString(line) || decorationOnly(line) {
			continue
		}
		return strings.TrimSpace(segment)
	}
	return ""
}

// decorationOnly reports whether a line holds nothing but whitespace or markdown rules.
func decorationOnly(line string) bool {
	return strings.Trim(line, " \t-*_=#>") == ""
}

package history

import (
	"sync"
	"testing"
	"time"

	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/ranking"
)

func result(total int) models.GradingResult {
	return models.GradingResult{TotalScore: &total}
}

func TestAppendAssignsSequence(t *testing.T) {
	s := NewStore()
	for i, score := range []int{700, 950, 950} {
		e := s.Append("tema", result(score))
		if e.SequenceIndex != i {
			t.Fatalf("entry %d got sequence %d", i, e.SequenceIndex)
		}
		if *e.TotalScore() != score {
			t.Fatalf("entry %d score = %d", i, *e.TotalScore())
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d", s.Len())
	}
}

// TestAllIsSnapshot changes to the returned slice do not reach the store
func TestAllIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Append("a", result(500))
	s.Append("b", result(600))

	all := s.All()
	all[0].Theme = "changed"

	again := s.All()
	if len(again) != 2 || again[0].Theme != "a" || again[1].Theme != "b" {
		t.Fatalf("store mutated through snapshot: %+v", again)
	}
}

// TestStoredEntriesAreIsolated callers cannot reach stored scores through
// the result they appended or the copies they read back
func TestStoredEntriesAreIsolated(t *testing.T) {
	s := NewStore()
	r := result(700)
	score := 150
	r.Criteria[0].Score = &score
	r.Diagnostics = []models.Diagnostic{{Kind: models.KindExtractionMiss, Field: models.FieldTitle}}

	appended := s.Append("t", r)
	*r.TotalScore = 1
	score = 2
	r.Diagnostics[0].Field = "changed"
	*appended.Result.TotalScore = 3

	*ranking.TopN(s.All(), 1)[0].Result.TotalScore = 999
	found, _ := s.Find(appended.ID)
	*found.Result.Criteria[0].Score = 4

	got := s.All()[0]
	if *got.TotalScore() != 700 {
		t.Fatalf("stored total = %d, want 700", *got.TotalScore())
	}
	if *got.Result.Criteria[0].Score != 150 {
		t.Fatalf("stored criterion score = %d, want 150", *got.Result.Criteria[0].Score)
	}
	if got.Result.Diagnostics[0].Field != models.FieldTitle {
		t.Fatalf("stored diagnostics changed: %+v", got.Result.Diagnostics)
	}
}

func TestFind(t *testing.T) {
	s := NewStore()
	e := s.Append("a", result(500))
	got, ok := s.Find(e.ID)
	if !ok || got.SequenceIndex != 0 || got.Theme != "a" {
		t.Fatalf("Find() = %+v, %v", got, ok)
	}
	if _, ok := NewStore().Find(e.ID); ok {
		t.Fatalf("found entry in an empty store")
	}
}

func TestConcurrentAppend(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append("t", result(100))
			_ = s.All()
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, e := range s.All() {
		if seen[e.SequenceIndex] {
			t.Fatalf("sequence %d assigned twice", e.SequenceIndex)
		}
		seen[e.SequenceIndex] = true
	}
	if len(seen) != 50 {
		t.Fatalf("got %d entries, want 50", len(seen))
	}
}

func TestSessions(t *testing.T) {
	ss := NewSessions(0)
	a := ss.Get("a")
	if ss.Get("a") != a {
		t.Fatalf("Get returned a different store for the same session")
	}
	a.Append("tema", result(800))

	b := ss.Get("b")
	if b.Len() != 0 {
		t.Fatalf("sessions share history")
	}
	if ss.Count() != 2 {
		t.Fatalf("Count() = %d", ss.Count())
	}

	if !ss.End("a") {
		t.Fatalf("End(a) reported missing session")
	}
	if _, ok := ss.Lookup("a"); ok {
		t.Fatalf("session a survived End")
	}
	if ss.Get("a").Len() != 0 {
		t.Fatalf("new session a inherited old history")
	}
	if ss.End("missing") {
		t.Fatalf("End reported an unknown session")
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSessionsExpireWhenIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	ss := NewSessions(time.Hour)
	ss.now = clock.Now

	ss.Get("idle").Append("tema", result(800))
	ss.Get("busy")

	clock.Advance(40 * time.Minute)
	if _, ok := ss.Lookup("busy"); !ok {
		t.Fatalf("busy session expired early")
	}

	clock.Advance(30 * time.Minute)
	if _, ok := ss.Lookup("idle"); ok {
		t.Fatalf("idle session survived its TTL")
	}
	if _, ok := ss.Lookup("busy"); !ok {
		t.Fatalf("lookup did not keep the busy session alive")
	}

	clock.Advance(2 * time.Hour)
	if removed := ss.Sweep(); removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if ss.Count() != 0 {
		t.Fatalf("Count() = %d after sweep", ss.Count())
	}
	if ss.Get("idle").Len() != 0 {
		t.Fatalf("expired session kept its history")
	}
}

func TestSessionsGetSweepsOthers(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	ss := NewSessions(time.Minute)
	ss.now = clock.Now

	for _, id := range []string{"a", "b", "c"} {
		ss.Get(id)
	}
	clock.Advance(2 * time.Minute)
	ss.Get("d")

	if ss.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", ss.Count())
	}
	if ss.End("a") {
		t.Fatalf("End reported an expired session")
	}
}

package criteria

import "testing"

func TestAllOrderedAndRanged(t *testing.T) {
	defs := All()
	for i, d := range defs {
		if d.ID != i+1 {
			t.Fatalf("definition %d has id %d", i, d.ID)
		}
		if d.MinScore != 0 || d.MaxScore != 200 {
			t.Fatalf("definition %d range = [%d,%d]", d.ID, d.MinScore, d.MaxScore)
		}
		if d.Title == "" || d.Description == "" {
			t.Fatalf("definition %d is missing text", d.ID)
		}
	}
}

// TestAllReturnsCopy callers cannot alter the shared schema
func TestAllReturnsCopy(t *testing.T) {
	defs := All()
	defs[0].Title = "changed"
	if again := All(); again[0].Title == "changed" {
		t.Fatalf("schema was mutated through All()")
	}
}

func TestByID(t *testing.T) {
	if _, ok := ByID(0); ok {
		t.Fatalf("id 0 should be rejected")
	}
	if _, ok := ByID(6); ok {
		t.Fatalf("id 6 should be rejected")
	}
	d, ok := ByID(3)
	if !ok || d.ID != 3 {
		t.Fatalf("ByID(3) = %+v, %v", d, ok)
	}
}

func TestRanges(t *testing.T) {
	cases := []struct {
		score     int
		crit, tot bool
	}{
		{-1, false, false},
		{0, true, true},
		{200, true, true},
		{201, false, true},
		{1000, false, true},
		{1001, false, false},
	}
	for _, c := range cases {
		if got := InRange(c.score); got != c.crit {
			t.Errorf("InRange(%d) = %v", c.score, got)
		}
		if got := InTotalRange(c.score); got != c.tot {
			t.Errorf("InTotalRange(%d) = %v", c.score, got)
		}
	}
}

func TestFallbackTitle(t *testing.T) {
	if got := FallbackTitle(4); got != "Competência 4" {
		t.Fatalf("FallbackTitle(4) = %q", got)
	}
}

package id

import "testing"

func TestNextMonotonic(t *testing.T) {
	g := NewGenerator()
	prev := g.Next()
	for i := 0; i < 1000; i++ {
		cur := g.Next()
		if !(prevLess(prev, cur)) {
			t.Fatalf("id regressed: %s then %s", prev, cur)
		}
		prev = cur
	}
}

func TestClockRegression(t *testing.T) {
	saved := nowMs
	defer func() { nowMs = saved }()

	ms := int64(1_700_000_000_000)
	nowMs = func() int64 { return ms }
	g := NewGenerator()
	a := g.Next()
	ms-- // clock goes backwards
	b := g.Next()
	if !prevLess(a, b) {
		t.Fatalf("expected %s < %s despite clock regression", a, b)
	}
}

func TestShort(t *testing.T) {
	g := NewGenerator()
	s := g.Next().Short()
	if len(s) != 12 {
		t.Fatalf("short form length: %d", len(s))
	}
}

func prevLess(a, b ID) bool {
	for i := 0; i < len(a); i++ {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return false
}

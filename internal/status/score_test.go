// internal/status/score_test.go
package status

import (
	"math"
	"testing"
)

func TestScore_LinearRescale(t *testing.T) {
	got := Score(-50, -90, -30)
	want := 40.0 / 60.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score(-50) = %v, want %v", got, want)
	}

	got = Score(-40, -90, -30)
	want = 50.0 / 60.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score(-40) = %v, want %v", got, want)
	}
}

func TestScore_ClampsBelowFloor(t *testing.T) {
	for _, raw := range []float64{-90, -91, -120, -1e9} {
		if got := Score(raw, -90, -30); got != 0 {
			t.Fatalf("Score(%v) = %v, want exactly 0", raw, got)
		}
	}
}

func TestScore_ClampsAboveCeil(t *testing.T) {
	for _, raw := range []float64{-30, -29, 0, 1e9} {
		if got := Score(raw, -90, -30); got != 1 {
			t.Fatalf("Score(%v) = %v, want exactly 1", raw, got)
		}
	}
}

func TestScore_DegenerateRange(t *testing.T) {
	if got := Score(-50, -30, -30); got != 0 {
		t.Fatalf("degenerate range scored %v, want 0", got)
	}
	if got := Score(-50, -30, -90); got != 0 {
		t.Fatalf("inverted range scored %v, want 0", got)
	}
}

func TestScore_NaN(t *testing.T) {
	if got := Score(math.NaN(), -90, -30); got != 0 {
		t.Fatalf("NaN scored %v, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		q    float64
		want int
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 50},
		{2.0 / 3.0, 67},
		{1, 100},
		{1.5, 100},
	}
	for _, c := range cases {
		if got := Percent(c.q); got != c.want {
			t.Fatalf("Percent(%v) = %d, want %d", c.q, got, c.want)
		}
	}
}

func TestBucket_Boundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{0, "none"},
		{19, "none"},
		{20, "weak"},
		{39, "weak"},
		{40, "fair"},
		{59, "fair"},
		{60, "good"},
		{79, "good"},
		{80, "strong"},
		{100, "strong"},
	}
	for _, c := range cases {
		if got := Bucket(c.pct); got != c.want {
			t.Fatalf("Bucket(%d) = %q, want %q", c.pct, got, c.want)
		}
	}
}

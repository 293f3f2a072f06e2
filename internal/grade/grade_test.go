package grade

import "testing"

func TestLetter(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{50, "D"},
		{49, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := Letter(tc.score); got != tc.want {
			t.Errorf("Letter(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestValidScore(t *testing.T) {
	t.Run("accepts bounds", func(t *testing.T) {
		if !ValidScore(0) || !ValidScore(100) {
			t.Error("expected 0 and 100 to be valid scores")
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		if ValidScore(-1) {
			t.Error("expected -1 to be invalid")
		}
		if ValidScore(101) {
			t.Error("expected 101 to be invalid")
		}
	})
}

func TestPassing(t *testing.T) {
	if !Passing(50) {
		t.Error("expected 50 to pass")
	}
	if Passing(49) {
		t.Error("expected 49 to fail")
	}
}

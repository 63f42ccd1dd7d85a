package handlers

import "testing"

func TestClockPattern(t *testing.T) {
	for _, ok := range []string{"00:00", "9:59", "1:02:03", "12:00:00"} {
		if !clockPattern.MatchString(ok) {
			t.Fatalf("expected %q to match", ok)
		}
	}
	for _, bad := range []string{"", "60:00", "1:2", "abc", "00:00:00:00"} {
		if clockPattern.MatchString(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("SKN_TEST_DUR", "45")
	if got := Duration("SKN_TEST_DUR", time.Second); got != 45*time.Second {
		t.Fatalf("bare seconds: got %s", got)
	}
	t.Setenv("SKN_TEST_DUR", "250ms")
	if got := Duration("SKN_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("duration string: got %s", got)
	}
	t.Setenv("SKN_TEST_DUR", "soon")
	if got := Duration("SKN_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("fallback: got %s", got)
	}
}

func TestListAndBool(t *testing.T) {
	t.Setenv("SKN_TEST_LIST", " a, ,b ,")
	got := List("SKN_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list %v", got)
	}
	t.Setenv("SKN_TEST_BOOL", "off")
	if Bool("SKN_TEST_BOOL", true) {
		t.Fatalf("expected false")
	}
	t.Setenv("SKN_TEST_FLOAT", "0.25")
	if Float("SKN_TEST_FLOAT", 1) != 0.25 {
		t.Fatalf("expected parsed float")
	}
	if Int("SKN_TEST_MISSING_INT", 7) != 7 {
		t.Fatalf("expected default int")
	}
}

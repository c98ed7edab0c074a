package domain

import "testing"

func TestSafeFloatValid(t *testing.T) {
	if got := SafeFloat("50000", 0); got != 50000 {
		t.Errorf("SafeFloat(50000) = %v, want 50000", got)
	}
	if got := SafeFloat("123.45", 0); got != 123.45 {
		t.Errorf("SafeFloat(123.45) = %v, want 123.45", got)
	}
	if got := SafeFloat("-3.5", 0); got != -3.5 {
		t.Errorf("SafeFloat(-3.5) = %v, want -3.5", got)
	}
}

func TestSafeFloatMalformed(t *testing.T) {
	cases := []string{"", "abc", "12,345", "1.2.3", "  ", "null"}
	for _, c := range cases {
		if got := SafeFloat(c, 0); got != 0 {
			t.Errorf("SafeFloat(%q) = %v, want 0", c, got)
		}
	}
	if got := SafeFloat("garbage", 7.5); got != 7.5 {
		t.Errorf("SafeFloat(garbage, 7.5) = %v, want default 7.5", got)
	}
}

func TestSafeIntValid(t *testing.T) {
	if got := SafeInt("10", 0); got != 10 {
		t.Errorf("SafeInt(10) = %v, want 10", got)
	}
	// Brokers occasionally send quantities with a fractional suffix.
	if got := SafeInt("10.0", 0); got != 10 {
		t.Errorf("SafeInt(10.0) = %v, want 10", got)
	}
	if got := SafeInt("10.9", 0); got != 10 {
		t.Errorf("SafeInt(10.9) = %v, want 10 (truncated)", got)
	}
}

func TestSafeIntMalformed(t *testing.T) {
	for _, c := range []string{"", "x", "ten"} {
		if got := SafeInt(c, 0); got != 0 {
			t.Errorf("SafeInt(%q) = %v, want 0", c, got)
		}
	}
	if got := SafeInt("", 5); got != 5 {
		t.Errorf("SafeInt(empty, 5) = %v, want default 5", got)
	}
}

func TestSafeIntWhitespace(t *testing.T) {
	if got := SafeInt(" 42 ", 0); got != 42 {
		t.Errorf("SafeInt(' 42 ') = %v, want 42", got)
	}
}

func TestSafeParseInvalid(t *testing.T) {
	if got := SafeParse("not-a-number"); !got.IsZero() {
		t.Errorf("SafeParse(not-a-number) = %v, want 0", got)
	}
}

package pinentry

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// maskTestRebuild is the from-scratch reference for Masker.Resolve.
func maskTestRebuild(raw, mask string) string {
	n := utf8.RuneCountInString(raw)
	units := []rune(strings.Repeat(mask, n))
	return string(units[:n])
}

func TestMaskerWithoutMaskReturnsRaw(t *testing.T) {
	m := NewMasker(nil)
	if got := m.Resolve("1234"); got != "1234" {
		t.Errorf("Resolve = %q, want %q", got, "1234")
	}
	if m.Masked() {
		t.Error("Masked() = true without a mask")
	}
	if got := NewMasker(StringPtr("")).Resolve("12"); got != "12" {
		t.Errorf("empty mask: Resolve = %q, want raw text", got)
	}
}

func TestMaskerLengthMatchesInput(t *testing.T) {
	m := NewMasker(StringPtr("*"))
	for _, raw := range []string{"", "1", "12", "123", "1234", "12", ""} {
		got := m.Resolve(raw)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(raw) {
			t.Errorf("Resolve(%q) = %q: rune count mismatch", raw, got)
		}
	}
}

func TestMaskerMultiRuneMaskIsHistoryIndependent(t *testing.T) {
	mask := "ab●"
	m := NewMasker(StringPtr(mask))
	// Grow, shrink and regrow through every length; each answer must equal
	// a fresh rebuild.
	sequence := []string{"1", "12", "123", "1234", "12345", "12", "1", "123", "", "1234"}
	for _, raw := range sequence {
		got := m.Resolve(raw)
		want := maskTestRebuild(raw, mask)
		if got != want {
			t.Errorf("Resolve(%q) = %q, want %q", raw, got, want)
		}
		if again := m.Resolve(raw); again != got {
			t.Errorf("Resolve(%q) not idempotent: %q then %q", raw, got, again)
		}
	}
}

func TestMaskerCountsRunesNotBytes(t *testing.T) {
	m := NewMasker(StringPtr("#"))
	if got := m.Resolve("äö"); got != "##" {
		t.Errorf("Resolve(\"äö\") = %q, want %q", got, "##")
	}
}

func TestMaskForPasswordInput(t *testing.T) {
	if got := MaskFor(InputTextPassword, nil); got == nil || *got != DefaultMask {
		t.Errorf("text password without mask: got %v, want %q", got, DefaultMask)
	}
	if got := MaskFor(InputNumberPassword, StringPtr("")); got == nil || *got != DefaultMask {
		t.Errorf("number password with empty mask: got %v, want %q", got, DefaultMask)
	}
	if got := MaskFor(InputNumberPassword, StringPtr("x")); got == nil || *got != "x" {
		t.Errorf("explicit mask should win, got %v", got)
	}
	if got := MaskFor(InputNumber, nil); got != nil {
		t.Errorf("plain number input should not be masked, got %q", *got)
	}
}

func TestMaskerReset(t *testing.T) {
	m := NewMasker(StringPtr("xy"))
	m.Resolve("12345")
	m.Reset()
	if got := m.Resolve("123"); got != "xyx" {
		t.Errorf("after Reset, Resolve = %q, want %q", got, "xyx")
	}
}

package app

import "crypto/subtle"

// Verifier checks entered codes against the expected one.
type Verifier struct {
	Expect string
}

// Check reports whether pin matches. checked is false when no code is
// expected, in which case every pin is accepted.
func (v Verifier) Check(pin string) (ok, checked bool) {
	if v.Expect == "" {
		return true, false
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(v.Expect)) == 1, true
}

// Feedback is told about every verified code. feedback.Chime plays tones.
type Feedback interface {
	Accept()
	Reject()
}

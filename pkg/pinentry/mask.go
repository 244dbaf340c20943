package pinentry

// DefaultMask is drawn for password input types without a configured mask.
const DefaultMask = "●"

// MaskFor returns the mask to use for an input type. An explicit non-empty
// mask always wins; password types otherwise get DefaultMask.
func MaskFor(t InputType, mask *string) *string {
	if mask != nil && *mask != "" {
		return mask
	}
	if t.IsPassword() {
		return StringPtr(DefaultMask)
	}
	return nil
}

// Masker derives the text drawn in the slots from the raw input. The buffer
// of repeated mask units only ever grows by whole units; each call returns
// a prefix of it, so the output matches a full rebuild.
type Masker struct {
	mask []rune
	buf  []rune
}

// NewMasker returns a Masker for mask. A nil or empty mask shows the raw
// text.
func NewMasker(mask *string) *Masker {
	m := &Masker{}
	if mask != nil && *mask != "" {
		m.mask = []rune(*mask)
	}
	return m
}

// Masked reports whether raw characters are hidden.
func (m *Masker) Masked() bool {
	return len(m.mask) > 0
}

// Resolve returns the display text for raw. The result always has as many
// runes as raw.
func (m *Masker) Resolve(raw string) string {
	if len(m.mask) == 0 {
		return raw
	}
	n := len([]rune(raw))
	for len(m.buf) < n {
		m.buf = append(m.buf, m.mask...)
	}
	return string(m.buf[:n])
}

// Reset drops the retained buffer.
func (m *Masker) Reset() {
	m.buf = m.buf[:0]
}

package app

// CycleFocusForward moves focus to the next field, wrapping around to the
// first field after the last.
func (m *Model) CycleFocusForward() {
	if len(m.fields) == 0 {
		return
	}
	m.setFocus((m.focused + 1) % len(m.fields))
}

// CycleFocusBackward moves focus to the previous field, wrapping around to
// the last field before the first.
func (m *Model) CycleFocusBackward() {
	if len(m.fields) == 0 {
		return
	}
	m.setFocus((m.focused - 1 + len(m.fields)) % len(m.fields))
}

// FocusField directly sets focus to the field with the given ID. If the ID
// is not found, focus does not change.
func (m *Model) FocusField(id string) {
	if i := m.fieldIndex(id); i >= 0 {
		m.setFocus(i)
	}
}

// setFocus moves Core focus so exactly one field draws as focused.
func (m *Model) setFocus(idx int) {
	for i, f := range m.fields {
		f.SetFocused(i == idx)
	}
	m.focused = idx
}

// fieldIndex returns the position of the field with the given ID, or -1.
func (m *Model) fieldIndex(id string) int {
	for i, f := range m.fields {
		if f.ID() == id {
			return i
		}
	}
	return -1
}

// focusedField returns the focused field, or nil without fields.
func (m *Model) focusedField() *PinField {
	if m.focused < 0 || m.focused >= len(m.fields) {
		return nil
	}
	return m.fields[m.focused]
}

// fieldsDirty reports whether any field asked for a redraw.
func (m *Model) fieldsDirty() bool {
	for _, f := range m.fields {
		if f.Dirty() {
			return true
		}
	}
	return false
}

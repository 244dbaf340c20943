package pinentry

// Notifier delivers the entered code once per climb to the maximum length.
// It starts armed, disarms when it reports a completion, and re-arms when
// the text drops below the maximum again.
type Notifier struct {
	armed    bool
	listener func(pin string)
}

// NewNotifier returns an armed Notifier without a listener.
func NewNotifier() *Notifier {
	return &Notifier{armed: true}
}

// SetListener installs fn; nil drops future completions.
func (n *Notifier) SetListener(fn func(pin string)) {
	n.listener = fn
}

// Observe records a text change to length runes and reports whether it
// completes the code.
func (n *Notifier) Observe(length, max int) bool {
	if length < max {
		n.armed = true
		return false
	}
	if length == max && n.armed {
		n.armed = false
		return true
	}
	return false
}

// Notify hands pin to the listener and reports whether one was installed.
func (n *Notifier) Notify(pin string) bool {
	if n.listener == nil {
		return false
	}
	n.listener(pin)
	return true
}

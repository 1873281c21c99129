package diag

// Recorder keeps the most recent failure. It is a single slot: every Record
// of a non-nil error overwrites the previous one.
type Recorder struct {
	last error
}

// Record stores err when it is non-nil and returns it unchanged, so call
// sites can write `return r.Record(err)`.
func (r *Recorder) Record(err error) error {
	if err != nil {
		r.last = err
	}
	return err
}

// Last returns the most recently recorded error, or nil.
func (r *Recorder) Last() error {
	return r.last
}

// Message returns the text of the most recent error, or "" when none was
// recorded.
func (r *Recorder) Message() string {
	if r.last == nil {
		return ""
	}
	return r.last.Error()
}

// Reset clears the slot.
func (r *Recorder) Reset() {
	r.last = nil
}

package util

// ErrPublic is an error whose message is safe to display to the end-user.
// Anything else should be treated as an internal error and logged rather than
// echoed.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

func (e ErrPublic) Is(v error) bool {
	_, ok := v.(ErrPublic)
	return ok
}

package render

// Error is the single error kind reported by renderers. It wraps whatever the
// underlying template engine signalled — lookup, parse, evaluation or I/O
// failures are not distinguished — and always carries the originating error
// as its cause when one exists.
type Error struct {
	Message string
	Cause   error
}

// NewError returns an Error carrying only a detail message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// Wrap returns an Error carrying cause as its underlying failure.
func Wrap(cause error) *Error {
	return &Error{Cause: cause}
}

// WrapMessage returns an Error carrying both a detail message and an
// underlying cause.
func WrapMessage(message string, cause error) *Error {
	return &Error{Message: message, Cause: cause}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return "render failed"
	}
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

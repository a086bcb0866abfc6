package model

// Level is the severity attached to a Response.
type Level int

// Severity levels.
const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type responseKind int

const (
	responseOK responseKind = iota
	responseWarn
	responseFail
)

// Response carries the outcome of a collaborator call: a bare payload, a
// payload with a warning for the user, or an error with no usable payload.
type Response[T any] struct {
	kind    responseKind
	payload T
	warning string
	err     error
}

// Ok wraps a payload with no message.
func Ok[T any](payload T) Response[T] {
	return Response[T]{kind: responseOK, payload: payload}
}

// Warn wraps a usable payload together with a message to surface.
func Warn[T any](payload T, msg string) Response[T] {
	return Response[T]{kind: responseWarn, payload: payload, warning: msg}
}

// Fail wraps an error. The payload of a failed response is the zero value.
func Fail[T any](err error) Response[T] {
	return Response[T]{kind: responseFail, err: err}
}

// Unwrap returns the payload, the warning message (empty when none) and the
// error. Callers must discard the payload when err is non-nil.
func (r Response[T]) Unwrap() (T, string, error) {
	if r.kind == responseFail {
		var zero T
		return zero, "", r.err
	}
	return r.payload, r.warning, nil
}

// Level reports the severity of the response.
func (r Response[T]) Level() Level {
	switch r.kind {
	case responseWarn:
		return LevelWarning
	case responseFail:
		return LevelError
	default:
		return LevelInfo
	}
}

// Message returns the warning or error text, or "" for a bare success.
func (r Response[T]) Message() string {
	switch r.kind {
	case responseWarn:
		return r.warning
	case responseFail:
		if r.err != nil {
			return r.err.Error()
		}
	}
	return ""
}

// Then chains a second call on success. An earlier warning takes
// precedence over a later one.
func Then[T, U any](r Response[T], next func(T) Response[U]) Response[U] {
	payload, warning, err := r.Unwrap()
	if err != nil {
		return Fail[U](err)
	}
	out := next(payload)
	if warning != "" && out.kind != responseFail {
		return Warn(out.payload, warning)
	}
	return out
}

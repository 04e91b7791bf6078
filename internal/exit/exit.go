package exit

import "fmt"

const (
	CodeFailure = 1
	CodeUsage   = 1
	CodeConfig  = 1
	CodeAPI     = 2
	CodeData    = 3
)

// Error carries the process exit code for a failed run. A nil Err means the
// command already told the user what went wrong (usage text, for example).
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Silent reports whether there is no message worth printing.
func (e *Error) Silent() bool {
	return e.Err == nil
}

func New(code int, err error) error {
	return &Error{Code: code, Err: err}
}

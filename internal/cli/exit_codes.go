package cli

// Exit codes for the kacl CLI. These support scripting and CI integration:
// a checker can distinguish "file is malformed" from "file needs
// reformatting" without parsing output.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitParseFailed indicates the changelog could not be parsed.
	ExitParseFailed = 1

	// ExitOutOfSync indicates the file differs from its canonical form.
	ExitOutOfSync = 2

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3
)

// ExitError carries an exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an exit code. err may be nil when the
// command already printed its diagnostics.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

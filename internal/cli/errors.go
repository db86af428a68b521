package cli

// ArgumentError is a bad command line: an unknown command, a missing
// database path or a missing required flag. Run maps it to exit code 2.
type ArgumentError struct {
	Msg string
	Err error
}

func (e *ArgumentError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "invalid arguments"
}

func (e *ArgumentError) Unwrap() error { return e.Err }

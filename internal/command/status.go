package command

// Status is the outcome of a command invocation. It is mapped to a process
// exit code only by the caller of Execute.
type Status int

const (
	StatusOK Status = iota
	StatusHelp
	StatusUsage
	StatusFailure
	StatusInterrupted
	StatusBrokenPipe
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusHelp:
		return "help"
	case StatusUsage:
		return "usage"
	case StatusFailure:
		return "failure"
	case StatusInterrupted:
		return "interrupted"
	case StatusBrokenPipe:
		return "broken pipe"
	default:
		return "unknown"
	}
}

// ExitCode is 0 for successful, help, interrupted and broken pipe runs and
// 1 otherwise.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusHelp, StatusInterrupted, StatusBrokenPipe:
		return 0
	default:
		return 1
	}
}

package ports

// SelectOption is one choice offered by a Reporter prompt.
type SelectOption struct {
	// Label is the human-readable description shown to the user.
	Label string
	// Value is returned when the option is chosen.
	Value string
}

// Reporter is the user-facing output surface of an install. The flattener's
// interactive disambiguation is the only user-input point in the core.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Step announces pipeline progress as "current of total".
	Step(current, total int, msg string)
	Success(msg string)
	Warn(msg string)
	Info(msg string)
	// Command echoes a shell command the user may want to run.
	Command(cmd string)
	// Select prompts the user to pick one option and returns its value.
	Select(message, answerPrompt string, options []SelectOption) (string, error)
}

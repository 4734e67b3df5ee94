package workspace

import "fmt"

// Level classifies a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a blocking message for the user. Action names what was being
// attempted, e.g. "create contact".
type Notice struct {
	Level   Level
	Action  string
	Message string
}

func (n Notice) String() string {
	if n.Level == LevelError {
		return fmt.Sprintf("[error] %s: %s", n.Action, n.Message)
	}
	return n.Message
}

// Notifier shows notices to the user. Implementations must be safe for
// concurrent use: both mount fetches may fail at once.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Confirmer asks the user a yes/no question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// declineAll is the Confirmer used when none is configured.
type declineAll struct{}

func (declineAll) Confirm(string) bool { return false }

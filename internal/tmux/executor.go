package tmux

// Executor abstracts the tmux operations the tool needs, so commands can be
// tested against an in-memory fake.
type Executor interface {
	// ListSessions returns the names of all running sessions. A stopped
	// server is an empty list, not an error.
	ListSessions() ([]string, error)
	HasSession(name string) bool
	// NewSession creates a detached session. dir and env may be empty.
	NewSession(name, dir string, env []string) error
	SwitchClient(name string) error
	// Attach runs tmux attach as a child process and returns on detach.
	Attach(name string) error
	// CurrentSession returns the session the invoking client is in.
	CurrentSession() (string, error)
	KillSession(name string) error
}

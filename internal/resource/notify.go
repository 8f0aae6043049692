package resource

import "sync"

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message for the user, shown once and forgotten.
type Notice struct {
	Level Level
	Title string
	Text  string
}

// Notifier presents notices. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(Notice)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// Recorder is a Notifier that keeps every notice. Used by tests and by
// screens that render notices after an operation returns.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns the recorded notices in arrival order.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Drain returns the recorded notices and forgets them.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

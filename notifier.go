package notemerger

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Notifier shows short messages to the user. Delivery is fire and forget.
type Notifier interface {
	Notify(message string, duration time.Duration)
}

type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string, duration time.Duration) {
	n.logger.Info(message, "duration", duration)
}

// Notice is one message delivered to a RecordingNotifier.
type Notice struct {
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// RecordingNotifier keeps every notice so it can be returned to a caller.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *RecordingNotifier) Notify(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Message: message, Duration: duration})
}

func (n *RecordingNotifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.notices...)
}

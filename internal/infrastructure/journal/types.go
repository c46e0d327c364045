package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry kinds. The journal records side-effect failures for inspection;
// entries are never replayed.
const (
	KindActivityLogFailure = "activity_log_failure"
	KindEmailFailure       = "email_failure"
)

// Entry is one recorded side-effect failure.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	TaskID    string    `json:"task_id"`
	Recipient string    `json:"recipient,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}

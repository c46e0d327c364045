package usecase

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// Mailer delivers a single message synchronously. Delivery is best-effort:
// callers report failures but never retry or queue.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// TaskCreationHook runs the post-creation side-effect chain for a task
// that was just persisted for the first time. created must be true only
// for the first insert; the hook is a no-op otherwise. It returns nothing:
// failures inside the hook never reach the triggering write path.
type TaskCreationHook interface {
	Run(ctx context.Context, task *domain.Task, project *domain.Project, created bool)
}

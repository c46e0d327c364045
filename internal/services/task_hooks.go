package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/infrastructure/journal"
	appLogger "github.com/taskforge/backend/pkg/logger"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

const assignmentMailSubject = "New Task Assigned"

// TaskCreationHook orchestrates the side effects of a first-time task
// insert: one activity log row, a structured log line, and a best-effort
// assignment email. An activity log failure aborts the remaining steps so
// no notification goes out for an un-logged event; a mail failure affects
// nothing else. Failures land in the journal, never in the caller.
type TaskCreationHook struct {
	recorder *ActivityRecorder
	users    repository.UserRepository
	mailer   usecase.Mailer
	journal  *journal.Store
	logger   *zap.Logger
}

func NewTaskCreationHook(
	recorder *ActivityRecorder,
	users repository.UserRepository,
	mailer usecase.Mailer,
	jrnl *journal.Store,
	logger *zap.Logger,
) *TaskCreationHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskCreationHook{
		recorder: recorder,
		users:    users,
		mailer:   mailer,
		journal:  jrnl,
		logger:   logger,
	}
}

// Run executes the hook. created must be true only for the first insert of
// the task; updates never fire the hook.
func (h *TaskCreationHook) Run(ctx context.Context, task *domain.Task, project *domain.Project, created bool) {
	if !created || task == nil {
		return
	}

	log := appLogger.WithRequestID(ctx, h.logger)

	if _, err := h.recorder.RecordCreation(ctx, task); err != nil {
		log.Error("activity log create failed",
			zap.String("task_id", task.ID),
			zap.Error(err))
		h.journalFailure(journal.Entry{
			Kind:   journal.KindActivityLogFailure,
			TaskID: task.ID,
			Reason: err.Error(),
		})
		return
	}

	assigneeID := ""
	if task.AssignedTo != nil {
		assigneeID = *task.AssignedTo
	}

	log.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("title", task.Title),
		zap.String("project_id", task.ProjectID),
		zap.String("assigned_to", assigneeID))

	if assigneeID == "" {
		log.Info("email skipped",
			zap.String("task_id", task.ID),
			zap.String("reason", "no assigned user"))
		return
	}

	assignee, err := h.users.GetByID(ctx, assigneeID)
	if err != nil || !assignee.HasEmail() {
		log.Info("email skipped",
			zap.String("task_id", task.ID),
			zap.String("reason", "assigned user has no email"))
		return
	}

	projectName := ""
	if project != nil {
		projectName = project.Name
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have been assigned a new task.\n\nTitle: %s\nProject: %s\nDue Date: %s\n",
		assignee.DisplayName(),
		task.Title,
		projectName,
		task.DueDate,
	)

	if err := h.mailer.Send(ctx, assignee.Email, assignmentMailSubject, body); err != nil {
		log.Error("task assignment email failed",
			zap.String("task_id", task.ID),
			zap.String("recipient", assignee.Email),
			zap.Error(err))
		h.journalFailure(journal.Entry{
			Kind:      journal.KindEmailFailure,
			TaskID:    task.ID,
			Recipient: assignee.Email,
			Reason:    err.Error(),
		})
		return
	}

	log.Info("email sent",
		zap.String("task_id", task.ID),
		zap.String("recipient", assignee.Email))
}

func (h *TaskCreationHook) journalFailure(entry journal.Entry) {
	if h.journal == nil {
		return
	}
	if err := h.journal.Append(entry); err != nil {
		h.logger.Warn("failed to journal side-effect failure", zap.Error(err))
	}
}

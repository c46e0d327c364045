package domain

import (
	"fmt"
	"strings"
)

// TaskChange is the set of task fields submitted by a client. A nil field
// was not part of the payload and is left untouched by an update. For
// AssignedTo, an empty string clears the assignment.
type TaskChange struct {
	ProjectID   *string
	Title       *string
	Description *string
	Status      *string
	DueDate     *Date
	AssignedTo  *string
}

// ValidateTaskChange checks field and cross-field rules over the submitted
// change set. today is the server's current calendar date. When isUpdate is
// false the change must form a complete task (title and due date present).
//
// The completed-requires-description rule deliberately inspects only the
// submitted fields, not the merged record state: a partial update that sets
// status=completed must resend a non-empty description to pass.
func ValidateTaskChange(change TaskChange, today Date, isUpdate bool) error {
	errs := NewValidationError()

	if change.Title != nil {
		title := strings.TrimSpace(*change.Title)
		if title == "" {
			errs.Add("title", "This field may not be blank.")
		} else if len(title) > MaxNameLength {
			errs.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", MaxNameLength))
		}
	} else if !isUpdate {
		errs.Add("title", "This field is required.")
	}

	if change.DueDate != nil {
		if change.DueDate.Before(today) {
			errs.Add("due_date", "Due date cannot be in the past.")
		}
	} else if !isUpdate {
		errs.Add("due_date", "This field is required.")
	}

	if change.Status != nil && !ValidStatus(*change.Status) {
		errs.Add("status", fmt.Sprintf("%q is not a valid choice.", *change.Status))
	}

	if change.Status != nil && *change.Status == StatusCompleted {
		if change.Description == nil || strings.TrimSpace(*change.Description) == "" {
			errs.Add(NonFieldErrors, "Description is required to mark task as completed.")
		}
	}

	return errs.OrNil()
}

// BuildTask materializes a new task from a validated change set. Status
// defaults to todo when not submitted.
func BuildTask(change TaskChange) Task {
	task := Task{Status: StatusTodo}
	ApplyTaskChange(&task, change)
	return task
}

// ApplyTaskChange merges the submitted fields into the task. The project
// binding is fixed at creation and never moves on update.
func ApplyTaskChange(task *Task, change TaskChange) {
	if task == nil {
		return
	}
	if task.ID == "" && change.ProjectID != nil {
		task.ProjectID = *change.ProjectID
	}
	if change.Title != nil {
		task.Title = strings.TrimSpace(*change.Title)
	}
	if change.Description != nil {
		task.Description = *change.Description
	}
	if change.Status != nil {
		task.Status = *change.Status
	}
	if change.DueDate != nil {
		task.DueDate = *change.DueDate
	}
	if change.AssignedTo != nil {
		if *change.AssignedTo == "" {
			task.AssignedTo = nil
		} else {
			assignee := *change.AssignedTo
			task.AssignedTo = &assignee
		}
	}
}

// ValidateProject checks the fields of a new or updated project.
func ValidateProject(name string) error {
	errs := NewValidationError()

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "This field may not be blank.")
	} else if len(name) > MaxNameLength {
		errs.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", MaxNameLength))
	}

	return errs.OrNil()
}

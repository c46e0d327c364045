package domain

// Access policies are pure predicates over already-loaded records. Listing
// endpoints additionally scope their queries to the subject's visible set;
// these checks guard individual object operations.

// CanActOnProject reports whether the subject may read or mutate the
// project. Only the owner may.
func CanActOnProject(subjectID string, project *Project) bool {
	return project != nil && subjectID != "" && project.OwnerID == subjectID
}

// CanActOnTask reports whether the subject may read or mutate the task:
// either the task is assigned to them or they own the parent project.
func CanActOnTask(subjectID string, task *Task) bool {
	if task == nil || subjectID == "" {
		return false
	}
	if task.AssignedTo != nil && *task.AssignedTo == subjectID {
		return true
	}
	return task.ProjectOwnerID == subjectID
}

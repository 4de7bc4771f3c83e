package tasks_services

import (
	projects_enums "tasktracker/internal/features/projects/enums"
	tasks_models "tasktracker/internal/features/tasks/models"

	"github.com/google/uuid"
)

// Pure permission predicates over a loaded role and task. Role is nil when
// the user is not a project member.

func CanManageTasks(role *projects_enums.ProjectRole) bool {
	return role != nil && role.IsManagement()
}

func IsAssignee(task *tasks_models.Task, userID uuid.UUID) bool {
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

// CanTouchTaskFile gates attachment upload and deletion: management roles
// and the task's assignee qualify.
func CanTouchTaskFile(role *projects_enums.ProjectRole, task *tasks_models.Task, userID uuid.UUID) bool {
	if CanManageTasks(role) {
		return true
	}

	return role != nil && IsAssignee(task, userID)
}

// CanViewTask applies the member visibility setting: a plain MEMBER in a
// project with allowMemberViewAllTasks disabled sees only own tasks.
func CanViewTask(
	role *projects_enums.ProjectRole,
	allowMemberViewAllTasks bool,
	task *tasks_models.Task,
	userID uuid.UUID,
) bool {
	if role == nil {
		return false
	}

	if role.IsManagement() || allowMemberViewAllTasks {
		return true
	}

	return IsAssignee(task, userID)
}

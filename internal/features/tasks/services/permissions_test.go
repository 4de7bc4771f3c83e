package tasks_services

import (
	"testing"

	projects_enums "tasktracker/internal/features/projects/enums"
	tasks_models "tasktracker/internal/features/tasks/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func rolePtr(role projects_enums.ProjectRole) *projects_enums.ProjectRole {
	return &role
}

func Test_CanManageTasks_ManagementRolesOnly(t *testing.T) {
	assert.True(t, CanManageTasks(rolePtr(projects_enums.ProjectRoleOwner)))
	assert.True(t, CanManageTasks(rolePtr(projects_enums.ProjectRoleLeader)))
	assert.False(t, CanManageTasks(rolePtr(projects_enums.ProjectRoleMember)))
	assert.False(t, CanManageTasks(nil))
}

func Test_IsAssignee_MatchesOnlyTheAssignedUser(t *testing.T) {
	assigneeID := uuid.New()
	task := &tasks_models.Task{AssigneeID: &assigneeID}

	assert.True(t, IsAssignee(task, assigneeID))
	assert.False(t, IsAssignee(task, uuid.New()))
	assert.False(t, IsAssignee(&tasks_models.Task{}, assigneeID))
}

func Test_CanTouchTaskFile_ManagementAndAssigneeAllowed(t *testing.T) {
	assigneeID := uuid.New()
	otherID := uuid.New()
	task := &tasks_models.Task{AssigneeID: &assigneeID}

	assert.True(t, CanTouchTaskFile(rolePtr(projects_enums.ProjectRoleOwner), task, otherID))
	assert.True(t, CanTouchTaskFile(rolePtr(projects_enums.ProjectRoleLeader), task, otherID))
	assert.True(t, CanTouchTaskFile(rolePtr(projects_enums.ProjectRoleMember), task, assigneeID))
	assert.False(t, CanTouchTaskFile(rolePtr(projects_enums.ProjectRoleMember), task, otherID))

	// A former assignee who left the project no longer qualifies
	assert.False(t, CanTouchTaskFile(nil, task, assigneeID))
}

func Test_CanViewTask_AppliesMemberVisibilitySetting(t *testing.T) {
	assigneeID := uuid.New()
	otherID := uuid.New()
	task := &tasks_models.Task{AssigneeID: &assigneeID}

	assert.False(t, CanViewTask(nil, true, task, assigneeID))

	assert.True(t, CanViewTask(rolePtr(projects_enums.ProjectRoleOwner), false, task, otherID))
	assert.True(t, CanViewTask(rolePtr(projects_enums.ProjectRoleLeader), false, task, otherID))

	assert.True(t, CanViewTask(rolePtr(projects_enums.ProjectRoleMember), true, task, otherID))
	assert.False(t, CanViewTask(rolePtr(projects_enums.ProjectRoleMember), false, task, otherID))
	assert.True(t, CanViewTask(rolePtr(projects_enums.ProjectRoleMember), false, task, assigneeID))
}

package tasks_controllers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"tasktracker/internal/features/invitations"
	projects_controllers "tasktracker/internal/features/projects/controllers"
	projects_dto "tasktracker/internal/features/projects/dto"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_testing "tasktracker/internal/features/projects/testing"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_dto "tasktracker/internal/features/tasks/dto"
	tasks_enums "tasktracker/internal/features/tasks/enums"
	tasks_models "tasktracker/internal/features/tasks/models"
	users_testing "tasktracker/internal/features/users/testing"
	test_utils "tasktracker/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

// Walks the whole product flow: project setup, invitation, task work,
// attachments and final teardown.
func Test_E2E_ProjectLifecycle_FromInvitationToDeletion(t *testing.T) {
	mailer := &invitations.RecordingMailer{}
	invitations.GetInvitationService().SetMailer(mailer)

	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		invitations.GetInvitationController(),
		GetTaskController(),
		GetAttachmentController(),
	)

	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	// Owner creates a project with restricted member visibility
	disabled := false
	var project projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+owner.Token,
		projects_dto.CreateProjectRequestDTO{
			Name:                    "Lifecycle Project",
			AllowMemberViewAllTasks: &disabled,
		},
		http.StatusOK,
		&project,
	)

	// Owner invites the second user by email
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		invitations.CreateInvitationRequestDTO{
			ProjectID: project.ID,
			Email:     member.Email,
			Role:      projects_enums.ProjectRoleMember,
		},
		http.StatusOK,
	)

	// The invitation email carries the redemption link
	var token string
	assert.Eventually(t, func() bool {
		for _, message := range mailer.Snapshot() {
			if message.To == member.Email {
				token = extractInvitationToken(message.Body)
				return token != ""
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)

	var accepted invitations.AcceptInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+member.Token,
		invitations.AcceptInvitationRequestDTO{Token: token},
		http.StatusOK,
		&accepted,
	)
	assert.Equal(t, project.ID, accepted.ProjectID)

	// Owner creates two tasks, one assigned to the new member
	dueAt := time.Now().UTC().Add(12 * time.Hour)

	var memberTask tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{
			ProjectID:  project.ID,
			Title:      "Member Work",
			AssigneeID: &member.UserID,
			DueAt:      &dueAt,
		},
		http.StatusOK,
		&memberTask,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/tasks",
		"Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{ProjectID: project.ID, Title: "Owner Work"},
		http.StatusOK,
	)

	// Restricted visibility: the member only sees their own task
	var memberList tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/project/"+project.ID.String(),
		"Bearer "+member.Token,
		http.StatusOK,
		&memberList,
	)
	assert.Len(t, memberList.Tasks, 1)
	assert.Equal(t, "Member Work", memberList.Tasks[0].Title)

	// The member progresses their task and attaches a file
	test_utils.MakePatchRequest(
		t,
		router,
		"/api/v1/tasks/detail/"+memberTask.ID.String()+"/status",
		"Bearer "+member.Token,
		tasks_dto.UpdateTaskStatusRequestDTO{Status: tasks_enums.TaskStatusInProgress},
		http.StatusOK,
	)

	uploadAttachments(t, router, memberTask.ID.String(), member.Token, []uploadFile{
		{name: "result.pdf", contentType: "application/pdf", content: "findings"},
	}, http.StatusOK)

	var detail tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/detail/"+memberTask.ID.String(),
		"Bearer "+member.Token,
		http.StatusOK,
		&detail,
	)
	assert.Equal(t, tasks_enums.TaskStatusInProgress, detail.Status)
	assert.Len(t, detail.Attachments, 1)

	// Owner tears the project down, everything cascades
	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		projects_dto.DeleteProjectRequestDTO{ConfirmationName: "Lifecycle Project"},
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/detail/"+memberTask.ID.String(),
		"Bearer "+member.Token,
		http.StatusNotFound,
	)

	var memberProjects projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+member.Token,
		http.StatusOK,
		&memberProjects,
	)
	assert.Empty(t, memberProjects.Projects)

	// The attached file reaches the store cleanup queue
	assert.NoError(t, tasks_cleanup.GetAttachmentCleanupService().ExecuteCleanupForTest())

	deletedForTask := false
	for _, key := range testStore.Deleted {
		if strings.HasPrefix(key, "tasks/"+memberTask.ID.String()+"/") {
			deletedForTask = true
		}
	}
	assert.True(t, deletedForTask)
}

func extractInvitationToken(body string) string {
	marker := "accept-invite?token="
	index := strings.Index(body, marker)
	if index < 0 {
		return ""
	}

	token := body[index+len(marker):]
	if end := strings.IndexAny(token, `"<&`); end >= 0 {
		token = token[:end]
	}

	return token
}

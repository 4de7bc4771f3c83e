package tasks_controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	projects_enums "tasktracker/internal/features/projects/enums"
	projects_testing "tasktracker/internal/features/projects/testing"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_dto "tasktracker/internal/features/tasks/dto"
	tasks_testing "tasktracker/internal/features/tasks/testing"
	users_testing "tasktracker/internal/features/users/testing"
	test_utils "tasktracker/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type uploadFile struct {
	name        string
	contentType string
	content     string
}

func uploadAttachments(
	t *testing.T,
	router *gin.Engine,
	taskID, authToken string,
	files []uploadFile,
	expectedStatus int,
) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create multipart part: %v", err)
		}
		if _, err := part.Write([]byte(file.content)); err != nil {
			t.Fatalf("failed to write multipart part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/detail/"+taskID+"/attachments", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+authToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, expectedStatus, w.Code, "unexpected upload status: %s", w.Body.String())

	return w.Body.Bytes()
}

func Test_UploadAttachments_WhenUserIsAssignee_FilesStored(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	assignee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Upload Project", owner, router)
	projects_testing.AddMemberToProject(project, assignee, projects_enums.ProjectRoleMember)

	task := tasks_testing.CreateTestTask(project.ID, "Task With Files", &assignee.UserID, nil)

	body := uploadAttachments(t, router, task.ID.String(), assignee.Token, []uploadFile{
		{name: "screenshot.png", contentType: "image/png", content: "png-bytes"},
		{name: "notes.pdf", contentType: "application/pdf", content: "pdf-bytes"},
	}, http.StatusOK)

	var response tasks_dto.UploadAttachmentsResponseDTO
	assert.NoError(t, unmarshalBody(body, &response))
	assert.Len(t, response.Attachments, 2)

	for _, attachment := range response.Attachments {
		assert.Equal(t, task.ID, attachment.TaskID)
		assert.True(t, strings.HasPrefix(attachment.FileURL, "https://storage.test/tasks/"+task.ID.String()+"/"))
	}

	uploadedForTask := 0
	for key := range testStore.Uploaded {
		if strings.HasPrefix(key, "tasks/"+task.ID.String()+"/") {
			uploadedForTask++
		}
	}
	assert.Equal(t, 2, uploadedForTask)

	var detail tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/detail/"+task.ID.String(),
		"Bearer "+assignee.Token,
		http.StatusOK,
		&detail,
	)
	assert.Len(t, detail.Attachments, 2)
}

func Test_UploadAttachments_WhenMemberIsNotAssignee_ReturnsForbidden(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Upload Denied", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	task := tasks_testing.CreateTestTask(project.ID, "Not Your Files", nil, nil)

	body := uploadAttachments(t, router, task.ID.String(), member.Token, []uploadFile{
		{name: "sneaky.png", contentType: "image/png", content: "nope"},
	}, http.StatusForbidden)

	assert.Contains(t, string(body), "insufficient permissions to manage task files")
}

func Test_UploadAttachments_WithUnsupportedType_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Type Checked", owner, router)
	task := tasks_testing.CreateTestTask(project.ID, "Picky Task", nil, nil)

	body := uploadAttachments(t, router, task.ID.String(), owner.Token, []uploadFile{
		{name: "malware.exe", contentType: "application/octet-stream", content: "binary"},
	}, http.StatusBadRequest)

	assert.Contains(t, string(body), "unsupported type")
}

func Test_UploadAttachments_WithTooManyFiles_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Bulk Limited", owner, router)
	task := tasks_testing.CreateTestTask(project.ID, "Limited Task", nil, nil)

	files := make([]uploadFile, 6)
	for i := range files {
		files[i] = uploadFile{name: "file.png", contentType: "image/png", content: "x"}
	}

	body := uploadAttachments(t, router, task.ID.String(), owner.Token, files, http.StatusBadRequest)
	assert.Contains(t, string(body), "too many files")
}

func Test_DeleteAttachment_WhenUserIsOwner_RecordRemovedAndRemoteDeleteScheduled(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Attachment Cleanup", owner, router)
	task := tasks_testing.CreateTestTask(project.ID, "Cleanup Task", nil, nil)

	body := uploadAttachments(t, router, task.ID.String(), owner.Token, []uploadFile{
		{name: "to-delete.png", contentType: "image/png", content: "temp"},
	}, http.StatusOK)

	var uploaded tasks_dto.UploadAttachmentsResponseDTO
	assert.NoError(t, unmarshalBody(body, &uploaded))
	assert.Len(t, uploaded.Attachments, 1)

	attachmentID := uploaded.Attachments[0].ID

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/detail/"+task.ID.String()+"/attachments/"+attachmentID.String(),
		"Bearer "+owner.Token,
		nil,
		http.StatusOK,
	)

	var detail tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/detail/"+task.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
		&detail,
	)
	assert.Empty(t, detail.Attachments)

	// The remote object is deleted by the background worker, run one pass
	assert.NoError(t, tasks_cleanup.GetAttachmentCleanupService().ExecuteCleanupForTest())

	deletedForTask := false
	for _, key := range testStore.Deleted {
		if strings.HasPrefix(key, "tasks/"+task.ID.String()+"/") {
			deletedForTask = true
		}
	}
	assert.True(t, deletedForTask)
}

func Test_DeleteAttachment_FromDifferentTask_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Crossed Wires", owner, router)
	task1 := tasks_testing.CreateTestTask(project.ID, "Task One", nil, nil)
	task2 := tasks_testing.CreateTestTask(project.ID, "Task Two", nil, nil)

	body := uploadAttachments(t, router, task1.ID.String(), owner.Token, []uploadFile{
		{name: "belongs-to-one.png", contentType: "image/png", content: "one"},
	}, http.StatusOK)

	var uploaded tasks_dto.UploadAttachmentsResponseDTO
	assert.NoError(t, unmarshalBody(body, &uploaded))

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/detail/"+task2.ID.String()+"/attachments/"+uploaded.Attachments[0].ID.String(),
		"Bearer "+owner.Token,
		nil,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "attachment does not belong to this task")
}

func Test_DeleteTask_SchedulesAttachmentRemoteDeletion(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Task Cascade Files", owner, router)
	task := tasks_testing.CreateTestTask(project.ID, "Task With Orphans", nil, nil)

	uploadAttachments(t, router, task.ID.String(), owner.Token, []uploadFile{
		{name: "orphan.png", contentType: "image/png", content: "orphan"},
	}, http.StatusOK)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/detail/"+task.ID.String(),
		"Bearer "+owner.Token,
		nil,
		http.StatusOK,
	)

	assert.NoError(t, tasks_cleanup.GetAttachmentCleanupService().ExecuteCleanupForTest())

	deletedForTask := false
	for _, key := range testStore.Deleted {
		if strings.HasPrefix(key, "tasks/"+task.ID.String()+"/") {
			deletedForTask = true
		}
	}
	assert.True(t, deletedForTask)
}

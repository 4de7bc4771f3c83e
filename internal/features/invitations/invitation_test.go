package invitations

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	projects_controllers "tasktracker/internal/features/projects/controllers"
	projects_enums "tasktracker/internal/features/projects/enums"
	projects_services "tasktracker/internal/features/projects/services"
	projects_testing "tasktracker/internal/features/projects/testing"
	users_testing "tasktracker/internal/features/users/testing"
	test_utils "tasktracker/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var testMailer = &RecordingMailer{}

func TestMain(m *testing.M) {
	invitationService.mailer = testMailer
	projects_services.GetProjectService().AddProjectDeletionListener(invitationService)

	os.Exit(m.Run())
}

func createInvitationTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		GetInvitationController(),
	)
}

func Test_CreateInvitation_WhenUserIsOwner_InvitationCreatedAndEmailSent(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Invite Project", owner, router)

	inviteeEmail := "invitee-" + project.ID.String()[:8] + "@test.com"
	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     inviteeEmail,
		Role:      projects_enums.ProjectRoleMember,
	}

	var response CreateInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, project.ID, response.ProjectID)
	assert.Equal(t, inviteeEmail, response.Email)
	assert.Equal(t, projects_enums.ProjectRoleMember, response.Role)
	assert.Equal(t, InvitationStatusPending, response.Status)
	assert.WithinDuration(t, time.Now().UTC().Add(InvitationLifetime), response.ExpiresAt, time.Minute)

	// Delivery is fire-and-forget, poll briefly for the recorded message
	assert.Eventually(t, func() bool {
		for _, message := range testMailer.Snapshot() {
			if message.To == inviteeEmail {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)

	for _, message := range testMailer.Snapshot() {
		if message.To == inviteeEmail {
			assert.Contains(t, message.Subject, "Invite Project")
			assert.Contains(t, message.Body, "accept-invite?token=")
		}
	}
}

func Test_CreateInvitation_WhenUserIsLeader_InvitationCreated(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	leader := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Leader Invites", owner, router)
	projects_testing.AddMemberToProject(project, leader, projects_enums.ProjectRoleLeader)

	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     "leader-invitee-" + project.ID.String()[:8] + "@test.com",
		Role:      projects_enums.ProjectRoleMember,
	}

	var response CreateInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+leader.Token,
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, InvitationStatusPending, response.Status)
}

func Test_CreateInvitation_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Member Cannot Invite", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     "someone@test.com",
		Role:      projects_enums.ProjectRoleMember,
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+member.Token,
		request,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to invite members")
}

func Test_CreateInvitation_WithOwnerRole_ReturnsBadRequest(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("No Owner Invites", owner, router)

	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     "someone@test.com",
		Role:      projects_enums.ProjectRoleOwner,
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invalid invitation role")
}

func Test_CreateInvitation_WhenInviteeIsAlreadyMember_ReturnsConflict(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Already Member", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     member.Email,
		Role:      projects_enums.ProjectRoleMember,
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		request,
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "user is already a member of this project")
}

func Test_CreateInvitation_EmailMatchingIsCaseInsensitive(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Case Insensitive", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	// An upper-cased variant of an existing member's email is still a conflict
	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     strings.ToUpper(member.Email),
		Role:      projects_enums.ProjectRoleMember,
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		request,
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "user is already a member of this project")
}

func Test_CreateInvitation_EmailStoredLowercased(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Lowercased Email", owner, router)

	request := CreateInvitationRequestDTO{
		ProjectID: project.ID,
		Email:     "MiXeD.Case@Example.COM",
		Role:      projects_enums.ProjectRoleMember,
	}

	var response CreateInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations",
		"Bearer "+owner.Token,
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, "mixed.case@example.com", response.Email)
}

func Test_AcceptInvitation_WithValidToken_UserJoinsProjectWithInvitedRole(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Join Me", owner, router)
	invitation := CreateTestInvitation(
		project.ID,
		owner.UserID,
		invitee.Email,
		projects_enums.ProjectRoleLeader,
		time.Now().UTC().Add(time.Hour),
	)

	var response AcceptInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, project.ID, response.ProjectID)

	role, err := projects_services.GetProjectService().GetUserProjectRole(project.ID, invitee.UserID)
	assert.NoError(t, err)
	assert.NotNil(t, role)
	assert.Equal(t, projects_enums.ProjectRoleLeader, *role)
}

func Test_AcceptInvitation_Twice_SecondRedemptionFails(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	firstUser := users_testing.CreateTestUser()
	secondUser := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Single Use", owner, router)
	invitation := CreateTestInvitation(
		project.ID,
		owner.UserID,
		firstUser.Email,
		projects_enums.ProjectRoleMember,
		time.Now().UTC().Add(time.Hour),
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+firstUser.Token,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+secondUser.Token,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invalid or expired invitation token")
}

func Test_AcceptInvitation_WithExpiredToken_ReturnsBadRequest(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Expired Invite", owner, router)
	invitation := CreateTestInvitation(
		project.ID,
		owner.UserID,
		invitee.Email,
		projects_enums.ProjectRoleMember,
		time.Now().UTC().Add(-time.Hour),
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invalid or expired invitation token")
}

func Test_AcceptInvitation_WhenUserIsAlreadyMember_ReturnsConflict(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Double Join", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	invitation := CreateTestInvitation(
		project.ID,
		owner.UserID,
		member.Email,
		projects_enums.ProjectRoleMember,
		time.Now().UTC().Add(time.Hour),
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+member.Token,
		AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "user is already a member of this project")
}

func Test_AcceptInvitation_WithUnknownToken_ReturnsBadRequest(t *testing.T) {
	router := createInvitationTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+user.Token,
		AcceptInvitationRequestDTO{Token: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invalid or expired invitation token")
}

func Test_GetProjectInvitations_WhenUserIsLeader_ReturnsInvitations(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	leader := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Invitation List", owner, router)
	projects_testing.AddMemberToProject(project, leader, projects_enums.ProjectRoleLeader)

	CreateTestInvitation(
		project.ID,
		owner.UserID,
		"listed-invitee@test.com",
		projects_enums.ProjectRoleMember,
		time.Now().UTC().Add(time.Hour),
	)

	var response GetInvitationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/project/"+project.ID.String(),
		"Bearer "+leader.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Invitations, 1)
	assert.Equal(t, "listed-invitee@test.com", response.Invitations[0].Email)
}

func Test_GetProjectInvitations_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Hidden Invitations", owner, router)
	projects_testing.AddMemberToProject(project, member, projects_enums.ProjectRoleMember)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/invitations/project/"+project.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view invitations")
}

func Test_DeleteProject_RemovesItsInvitations(t *testing.T) {
	router := createInvitationTestRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Cascade Invites", owner, router)
	CreateTestInvitation(
		project.ID,
		owner.UserID,
		"cascade-invitee@test.com",
		projects_enums.ProjectRoleMember,
		time.Now().UTC().Add(time.Hour),
	)

	ownerUser, err := users_testing.GetUserFromSignInResponse(owner)
	assert.NoError(t, err)

	err = projects_services.GetProjectService().DeleteProject(project.ID, project.Name, ownerUser)
	assert.NoError(t, err)

	invitations, err := invitationRepository.GetInvitationsByProjectID(project.ID)
	assert.NoError(t, err)
	assert.Empty(t, invitations)
}

package workspaces_controllers

import (
	"net/http"
	"testing"

	audit_logs "teamboards-backend/internal/features/audit_logs"
	users_enums "teamboards-backend/internal/features/users/enums"
	users_testing "teamboards-backend/internal/features/users/testing"
	workspaces_dto "teamboards-backend/internal/features/workspaces/dto"
	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	workspaces_testing "teamboards-backend/internal/features/workspaces/testing"
	test_utils "teamboards-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateWorkspace_CreatorBecomesOwner(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	user := users_testing.CreateTestUser()

	uniqueID := uuid.New().String()[:8]
	workspaceName := "Test Workspace " + uniqueID
	request := workspaces_dto.CreateWorkspaceRequestDTO{
		Name: workspaceName,
	}

	var response workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces",
		"Bearer "+user.Token,
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, workspaceName, response.Name)
	assert.NotEqual(t, uuid.Nil, response.ID)
	assert.Equal(t, users_enums.WorkspaceRoleOwner, *response.UserRole)

	members := workspaces_testing.GetWorkspaceMembers(
		&workspaces_models.Workspace{ID: response.ID},
		user.Token,
		router,
	)
	assert.Len(t, members.Members, 1)
	assert.Equal(t, user.UserID, members.Members[0].UserID)
	assert.Equal(t, users_enums.WorkspaceRoleOwner, members.Members[0].Role)
}

func Test_CreateWorkspace_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	user := users_testing.CreateTestUser()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/workspaces",
		Body:           "invalid json",
		AuthToken:      "Bearer " + user.Token,
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CreateWorkspace_WithoutAuthToken_ReturnsUnauthorized(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)

	request := workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Test Workspace",
	}

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces",
		"",
		request,
		http.StatusUnauthorized,
	)
}

func Test_GetUserWorkspaces_WhenUserHasWorkspaces_ReturnsWorkspacesList(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	user := users_testing.CreateTestUser()

	workspace1 := workspaces_testing.CreateTestWorkspace("Workspace 1", user, router)
	workspace2 := workspaces_testing.CreateTestWorkspace("Workspace 2", user, router)

	var response workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	assert.GreaterOrEqual(t, len(response.Workspaces), 2)

	workspaceNames := make([]string, len(response.Workspaces))
	for i, w := range response.Workspaces {
		workspaceNames[i] = w.Name
	}
	assert.Contains(t, workspaceNames, workspace1.Name)
	assert.Contains(t, workspaceNames, workspace2.Name)
}

func Test_GetUserWorkspaces_DoesNotIncludeForeignWorkspaces(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Private Workspace", owner, router)

	var response workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces",
		"Bearer "+outsider.Token,
		http.StatusOK,
		&response,
	)

	for _, w := range response.Workspaces {
		assert.NotEqual(t, workspace.ID, w.ID)
	}
}

func Test_GetSingleWorkspace_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name               string
		workspaceRole      *users_enums.WorkspaceRole
		expectSuccess      bool
		expectedStatusCode int
	}{
		{
			name:               "workspace owner can get workspace",
			workspaceRole:      func() *users_enums.WorkspaceRole { r := users_enums.WorkspaceRoleOwner; return &r }(),
			expectSuccess:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "workspace member can get workspace",
			workspaceRole:      func() *users_enums.WorkspaceRole { r := users_enums.WorkspaceRoleMember; return &r }(),
			expectSuccess:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "non-member cannot get workspace",
			workspaceRole:      nil,
			expectSuccess:      false,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := workspaces_testing.CreateTestRouter(
				GetWorkspaceController(),
				GetMembershipController(),
			)
			owner := users_testing.CreateTestUser()
			workspace := workspaces_testing.CreateTestWorkspace("Test Workspace", owner, router)

			var testUserToken string
			if tt.workspaceRole != nil && *tt.workspaceRole == users_enums.WorkspaceRoleOwner {
				testUserToken = owner.Token
			} else if tt.workspaceRole != nil {
				member := users_testing.CreateTestUser()
				workspaces_testing.AddMemberToWorkspace(workspace, member, *tt.workspaceRole, owner.Token, router)
				testUserToken = member.Token
			} else {
				nonMember := users_testing.CreateTestUser()
				testUserToken = nonMember.Token
			}

			if tt.expectSuccess {
				var response workspaces_models.Workspace
				test_utils.MakeGetRequestAndUnmarshal(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String(),
					"Bearer "+testUserToken,
					tt.expectedStatusCode,
					&response,
				)

				assert.Equal(t, workspace.ID, response.ID)
				assert.Equal(t, "Test Workspace", response.Name)
			} else {
				resp := test_utils.MakeGetRequest(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String(),
					"Bearer "+testUserToken,
					tt.expectedStatusCode,
				)
				assert.Contains(t, string(resp.Body), "insufficient permissions to view workspace")
			}
		})
	}
}

func Test_GetSingleWorkspace_WhenWorkspaceDoesNotExist_ReturnsNotFound(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	user := users_testing.CreateTestUser()

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+uuid.New().String(),
		"Bearer "+user.Token,
		http.StatusNotFound,
	)
	assert.Contains(t, string(resp.Body), "workspace not found")
}

func Test_GetSingleWorkspace_WithInvalidWorkspaceID_ReturnsBadRequest(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	user := users_testing.CreateTestUser()

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/invalid-uuid",
		"Bearer "+user.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid workspace ID")
}

func Test_UpdateWorkspace_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name               string
		workspaceRole      users_enums.WorkspaceRole
		expectSuccess      bool
		expectedStatusCode int
	}{
		{
			name:               "workspace owner can update workspace",
			workspaceRole:      users_enums.WorkspaceRoleOwner,
			expectSuccess:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "workspace member cannot update workspace",
			workspaceRole:      users_enums.WorkspaceRoleMember,
			expectSuccess:      false,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := workspaces_testing.CreateTestRouter(
				GetWorkspaceController(),
				GetMembershipController(),
			)
			owner := users_testing.CreateTestUser()
			workspace := workspaces_testing.CreateTestWorkspace("Original Name", owner, router)

			var testUserToken string
			if tt.workspaceRole == users_enums.WorkspaceRoleOwner {
				testUserToken = owner.Token
			} else {
				member := users_testing.CreateTestUser()
				workspaces_testing.AddMemberToWorkspace(workspace, member, tt.workspaceRole, owner.Token, router)
				testUserToken = member.Token
			}

			updateRequest := workspaces_models.Workspace{
				Name: "Updated Name",
			}

			if tt.expectSuccess {
				var response workspaces_models.Workspace
				test_utils.MakePutRequestAndUnmarshal(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String(),
					"Bearer "+testUserToken,
					updateRequest,
					tt.expectedStatusCode,
					&response,
				)

				assert.Equal(t, workspace.ID, response.ID)
				assert.Equal(t, "Updated Name", response.Name)
			} else {
				resp := test_utils.MakePutRequest(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String(),
					"Bearer "+testUserToken,
					updateRequest,
					tt.expectedStatusCode,
				)
				assert.Contains(t, string(resp.Body), "only workspace owner can update workspace")
			}
		})
	}
}

func Test_DeleteWorkspace_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name               string
		workspaceRole      users_enums.WorkspaceRole
		expectSuccess      bool
		expectedStatusCode int
	}{
		{
			name:               "workspace owner can delete workspace",
			workspaceRole:      users_enums.WorkspaceRoleOwner,
			expectSuccess:      true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "workspace member cannot delete workspace",
			workspaceRole:      users_enums.WorkspaceRoleMember,
			expectSuccess:      false,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := workspaces_testing.CreateTestRouter(
				GetWorkspaceController(),
				GetMembershipController(),
			)
			owner := users_testing.CreateTestUser()
			workspace := workspaces_testing.CreateTestWorkspace("Test Workspace", owner, router)

			var testUserToken string
			if tt.workspaceRole == users_enums.WorkspaceRoleOwner {
				testUserToken = owner.Token
			} else {
				member := users_testing.CreateTestUser()
				workspaces_testing.AddMemberToWorkspace(workspace, member, tt.workspaceRole, owner.Token, router)
				testUserToken = member.Token
			}

			resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
				Method:         "DELETE",
				URL:            "/api/v1/workspaces/" + workspace.ID.String(),
				AuthToken:      "Bearer " + testUserToken,
				ExpectedStatus: tt.expectedStatusCode,
			})

			if tt.expectSuccess {
				assert.Contains(t, string(resp.Body), "Workspace deleted successfully")

				test_utils.MakeGetRequest(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String(),
					"Bearer "+owner.Token,
					http.StatusNotFound,
				)
			} else {
				assert.Contains(t, string(resp.Body), "only workspace owner can delete workspace")
			}
		})
	}
}

func Test_GetWorkspaceAuditLogs_WhenUserIsMember_ReturnsAuditLogs(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Audit Test Workspace", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace,
		member,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	var response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/audit-logs",
		"Bearer "+member.Token, http.StatusOK, &response)

	assert.GreaterOrEqual(t, len(response.AuditLogs), 2) // Create + Add member
	for _, log := range response.AuditLogs {
		assert.Equal(t, &workspace.ID, log.WorkspaceID)
	}
}

func Test_GetWorkspaceAuditLogs_WithMultipleWorkspaces_ReturnsOnlyWorkspaceSpecificLogs(
	t *testing.T,
) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	owner1 := users_testing.CreateTestUser()
	owner2 := users_testing.CreateTestUser()

	workspaceName1 := "Workspace Test " + uuid.New().String()[:8]
	workspaceName2 := "Workspace Test " + uuid.New().String()[:8]

	workspace1 := workspaces_testing.CreateTestWorkspace(workspaceName1, owner1, router)
	workspace2 := workspaces_testing.CreateTestWorkspace(workspaceName2, owner2, router)

	var workspace1Response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/workspaces/"+workspace1.ID.String()+"/audit-logs?limit=50",
		"Bearer "+owner1.Token, http.StatusOK, &workspace1Response)

	var workspace2Response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/workspaces/"+workspace2.ID.String()+"/audit-logs?limit=50",
		"Bearer "+owner2.Token, http.StatusOK, &workspace2Response)

	assert.GreaterOrEqual(t, len(workspace1Response.AuditLogs), 1)
	for _, log := range workspace1Response.AuditLogs {
		assert.Equal(t, &workspace1.ID, log.WorkspaceID)
		assert.NotContains(t, log.Message, workspaceName2)
	}

	assert.GreaterOrEqual(t, len(workspace2Response.AuditLogs), 1)
	for _, log := range workspace2Response.AuditLogs {
		assert.Equal(t, &workspace2.ID, log.WorkspaceID)
		assert.NotContains(t, log.Message, workspaceName1)
	}
}

func Test_GetWorkspaceAuditLogs_WhenUserIsNotMember_ReturnsForbidden(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	owner := users_testing.CreateTestUser()
	nonMember := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Audit Test Workspace", owner, router)

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/audit-logs",
		"Bearer "+nonMember.Token, http.StatusForbidden)

	assert.Contains(t, string(resp.Body), "insufficient permissions to view workspace audit logs")
}

func Test_GetWorkspaceAuditLogs_WithoutAuthToken_ReturnsUnauthorized(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Test Workspace", owner, router)

	test_utils.MakeGetRequest(t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/audit-logs",
		"", http.StatusUnauthorized)
}

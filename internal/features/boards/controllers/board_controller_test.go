package boards_controllers

import (
	"net/http"
	"testing"

	boards "teamboards-backend/internal/features/boards"
	boards_dto "teamboards-backend/internal/features/boards/dto"
	boards_models "teamboards-backend/internal/features/boards/models"
	users_dto "teamboards-backend/internal/features/users/dto"
	users_enums "teamboards-backend/internal/features/users/enums"
	users_testing "teamboards-backend/internal/features/users/testing"
	workspaces_controllers "teamboards-backend/internal/features/workspaces/controllers"
	workspaces_models "teamboards-backend/internal/features/workspaces/models"
	workspaces_testing "teamboards-backend/internal/features/workspaces/testing"
	test_utils "teamboards-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createBoardTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
		workspaces_controllers.GetMembershipController(),
		GetBoardController(),
	)

	boards.SetupDependencies()

	return router
}

func createTestBoard(
	t *testing.T,
	router *gin.Engine,
	workspace *workspaces_models.Workspace,
	ownerToken string,
	name string,
) *boards_models.Board {
	t.Helper()

	var board boards_models.Board
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/boards",
		"Bearer "+ownerToken,
		boards_dto.CreateBoardRequestDTO{Name: name},
		http.StatusOK,
		&board,
	)

	return &board
}

func grantBoardAccess(
	t *testing.T,
	router *gin.Engine,
	board *boards_models.Board,
	userID uuid.UUID,
	ownerToken string,
) {
	t.Helper()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+ownerToken,
		boards_dto.GrantBoardAccessRequestDTO{UserID: userID},
		http.StatusOK,
	)
}

func addWorkspaceMember(
	workspace *workspaces_models.Workspace,
	member *users_dto.SignInResponseDTO,
	ownerToken string,
	router *gin.Engine,
) {
	workspaces_testing.AddMemberToWorkspace(
		workspace,
		member,
		users_enums.WorkspaceRoleMember,
		ownerToken,
		router,
	)
}

func Test_CreateBoard_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name               string
		actorIsOwner       bool
		expectedStatusCode int
	}{
		{
			name:               "workspace owner can create board",
			actorIsOwner:       true,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "workspace member cannot create board",
			actorIsOwner:       false,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := createBoardTestRouter()
			owner := users_testing.CreateTestUser()
			workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

			actorToken := owner.Token
			if !tt.actorIsOwner {
				member := users_testing.CreateTestUser()
				addWorkspaceMember(workspace, member, owner.Token, router)
				actorToken = member.Token
			}

			request := boards_dto.CreateBoardRequestDTO{Name: "Roadmap"}

			if tt.actorIsOwner {
				var board boards_models.Board
				test_utils.MakePostRequestAndUnmarshal(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String()+"/boards",
					"Bearer "+actorToken,
					request,
					tt.expectedStatusCode,
					&board,
				)

				assert.Equal(t, "Roadmap", board.Name)
				assert.Equal(t, workspace.ID, board.WorkspaceID)
				assert.NotEqual(t, uuid.Nil, board.ID)
			} else {
				resp := test_utils.MakePostRequest(
					t,
					router,
					"/api/v1/workspaces/"+workspace.ID.String()+"/boards",
					"Bearer "+actorToken,
					request,
					tt.expectedStatusCode,
				)
				assert.Contains(t, string(resp.Body), "only workspace owner can create boards")
			}
		})
	}
}

func Test_CreateBoard_GrantsCreatorAccess(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")

	var members boards_dto.GetBoardMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK,
		&members,
	)

	assert.Len(t, members.Members, 1)
	assert.Equal(t, owner.UserID, members.Members[0].UserID)
}

func Test_ListWorkspaceBoards_RequiresMembership(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")

	// Any workspace member can list boards, even without a grant.
	var response boards_dto.ListBoardsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/boards",
		"Bearer "+member.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Boards, 1)
	assert.Equal(t, board.ID, response.Boards[0].ID)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/boards",
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view workspace boards")
}

func Test_GetBoard_RequiresOwnershipOrGrant(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	grantedMember := users_testing.CreateTestUser()
	plainMember := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, grantedMember, owner.Token, router)
	addWorkspaceMember(workspace, plainMember, owner.Token, router)

	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")
	grantBoardAccess(t, router, board, grantedMember.UserID, owner.Token)

	// Workspace owner opens any board without a grant.
	var ownerView boards_models.Board
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
		&ownerView,
	)
	assert.Equal(t, board.ID, ownerView.ID)

	var memberView boards_models.Board
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+grantedMember.Token,
		http.StatusOK,
		&memberView,
	)
	assert.Equal(t, board.ID, memberView.ID)

	// Membership alone is not enough to open a board.
	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+plainMember.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view board")
}

func Test_GetBoard_WhenBoardDoesNotExist_ReturnsNotFound(t *testing.T) {
	router := createBoardTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+uuid.New().String(),
		"Bearer "+user.Token,
		http.StatusNotFound,
	)
	assert.Contains(t, string(resp.Body), "board not found")
}

func Test_GrantBoardAccess_WhenAlreadyGranted_ReturnsConflict(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")
	grantBoardAccess(t, router, board, member.UserID, owner.Token)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+owner.Token,
		boards_dto.GrantBoardAccessRequestDTO{UserID: member.UserID},
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "user already has access to this board")
}

func Test_GrantBoardAccess_ToNonWorkspaceMember_ReturnsBadRequest(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+owner.Token,
		boards_dto.GrantBoardAccessRequestDTO{UserID: outsider.UserID},
		http.StatusBadRequest,
	)
	assert.Contains(
		t,
		string(resp.Body),
		"user must be a workspace member to receive board access",
	)
}

func Test_GrantBoardAccess_ByNonOwner_ReturnsForbidden(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+member.Token,
		boards_dto.GrantBoardAccessRequestDTO{UserID: member.UserID},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "only workspace owner can manage board access")
}

func Test_RevokeBoardAccess_RemovesGrantAndIsIdempotent(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")
	grantBoardAccess(t, router, board, member.UserID, owner.Token)

	revokeURL := "/api/v1/boards/" + board.ID.String() + "/members/" + member.UserID.String()

	test_utils.MakeDeleteRequest(t, router, revokeURL, "Bearer "+owner.Token, http.StatusOK)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view board")

	// Revoking an absent grant succeeds without effect.
	test_utils.MakeDeleteRequest(t, router, revokeURL, "Bearer "+owner.Token, http.StatusOK)
}

func Test_DeleteBoard_PermissionsEnforced(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")
	grantBoardAccess(t, router, board, member.UserID, owner.Token)

	// A grant holder without ownership cannot delete the board.
	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "only workspace owner can delete boards")

	var stillThere boards_models.Board
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
		&stillThere,
	)
	assert.Equal(t, board.ID, stillThere.ID)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
}

func Test_RemoveWorkspaceMember_RevokesBoardGrants(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	addWorkspaceMember(workspace, member, owner.Token, router)
	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")
	grantBoardAccess(t, router, board, member.UserID, owner.Token)

	workspaces_testing.RemoveMemberFromWorkspace(workspace, member.UserID, owner.Token, router)

	// Rejoining does not restore the old grant.
	addWorkspaceMember(workspace, member, owner.Token, router)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view board")

	var members boards_dto.GetBoardMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/boards/"+board.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK,
		&members,
	)
	for _, m := range members.Members {
		assert.NotEqual(t, member.UserID, m.UserID)
	}
}

func Test_DeleteWorkspace_RemovesItsBoards(t *testing.T) {
	router := createBoardTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Board Workspace", owner, router)

	board := createTestBoard(t, router, workspace, owner.Token, "Roadmap")

	workspaces_testing.DeleteWorkspace(workspace, owner.Token, router)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/boards/"+board.ID.String(),
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
}

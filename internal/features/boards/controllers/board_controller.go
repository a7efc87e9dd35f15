package boards_controllers

import (
	"net/http"

	boards_dto "teamboards-backend/internal/features/boards/dto"
	boards_services "teamboards-backend/internal/features/boards/services"
	users_middleware "teamboards-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardController struct {
	boardService *boards_services.BoardService
}

func (c *BoardController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:id/boards", c.CreateBoard)
	router.GET("/workspaces/:id/boards", c.ListWorkspaceBoards)

	boardRoutes := router.Group("/boards/:id")

	boardRoutes.GET("", c.GetBoard)
	boardRoutes.DELETE("", c.DeleteBoard)
	boardRoutes.GET("/members", c.ListBoardMembers)
	boardRoutes.POST("/members", c.GrantBoardAccess)
	boardRoutes.DELETE("/members/:userId", c.RevokeBoardAccess)
}

func mapBoardError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "only workspace owner can create boards",
		"only workspace owner can delete boards",
		"only workspace owner can manage board access",
		"insufficient permissions to view workspace boards",
		"insufficient permissions to view board",
		"insufficient permissions to view board members":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "board not found",
		"workspace not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "user already has access to this board":
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// CreateBoard
// @Summary Create a board
// @Description Create a board in the workspace (owner only)
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body boards_dto.CreateBoardRequestDTO true "Board creation data"
// @Success 200 {object} boards_models.Board
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/boards [post]
func (c *BoardController) CreateBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceIDStr := ctx.Param("id")
	workspaceID, err := uuid.Parse(workspaceIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var request boards_dto.CreateBoardRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	board, err := c.boardService.CreateBoard(workspaceID, &request, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// ListWorkspaceBoards
// @Summary List workspace boards
// @Description Get all boards in the workspace (member access required)
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} boards_dto.ListBoardsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/boards [get]
func (c *BoardController) ListWorkspaceBoards(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceIDStr := ctx.Param("id")
	workspaceID, err := uuid.Parse(workspaceIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.boardService.GetWorkspaceBoards(workspaceID, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetBoard
// @Summary Get board details
// @Description Open a board (workspace owner or grant holder)
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} boards_models.Board
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id} [get]
func (c *BoardController) GetBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardIDStr := ctx.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	board, err := c.boardService.GetBoard(boardID, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// DeleteBoard
// @Summary Delete board
// @Description Delete a board and its access grants (workspace owner only)
// @Tags boards
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id} [delete]
func (c *BoardController) DeleteBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardIDStr := ctx.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	if err := c.boardService.DeleteBoard(boardID, user); err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// ListBoardMembers
// @Summary List board access grants
// @Description Get users holding access grants on the board
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} boards_dto.GetBoardMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id}/members [get]
func (c *BoardController) ListBoardMembers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardIDStr := ctx.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	response, err := c.boardService.GetBoardMembers(boardID, user)
	if err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GrantBoardAccess
// @Summary Grant board access
// @Description Grant a workspace member access to the board (workspace owner only)
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Param request body boards_dto.GrantBoardAccessRequestDTO true "Grant data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /boards/{id}/members [post]
func (c *BoardController) GrantBoardAccess(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardIDStr := ctx.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var request boards_dto.GrantBoardAccessRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.boardService.GrantBoardAccess(boardID, &request, user); err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Board access granted successfully"})
}

// RevokeBoardAccess
// @Summary Revoke board access
// @Description Remove a user's access grant from the board (workspace owner only)
// @Tags boards
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id}/members/{userId} [delete]
func (c *BoardController) RevokeBoardAccess(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardIDStr := ctx.Param("id")
	boardID, err := uuid.Parse(boardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	userIDStr := ctx.Param("userId")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.boardService.RevokeBoardAccess(boardID, userID, user); err != nil {
		mapBoardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Board access revoked successfully"})
}

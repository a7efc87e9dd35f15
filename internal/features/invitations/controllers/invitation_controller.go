package invitations_controllers

import (
	"net/http"

	invitations_dto "teamboards-backend/internal/features/invitations/dto"
	invitations_services "teamboards-backend/internal/features/invitations/services"
	users_middleware "teamboards-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationController struct {
	invitationService *invitations_services.InvitationService
}

func (c *InvitationController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:id/invitations", c.CreateInvitation)
	router.GET("/workspaces/:id/invitations", c.ListWorkspaceInvitations)

	invitationRoutes := router.Group("/invitations")

	invitationRoutes.GET("/my", c.ListMyInvitations)
	invitationRoutes.POST("/:id/accept", c.AcceptInvitation)
	invitationRoutes.POST("/:id/decline", c.DeclineInvitation)
}

func mapInvitationError(ctx *gin.Context, err error) {
	switch err.Error() {
	case "only workspace owner can invite users",
		"only workspace owner can view invitations",
		"invitation is addressed to another user":
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case "invitation not found",
		"workspace not found":
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case "a pending invitation already exists for this email",
		"user is already a member of this workspace",
		"invitation has already been resolved":
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// CreateInvitation
// @Summary Invite a user to the workspace
// @Description Create a pending invitation for an email (workspace owner only). Unregistered emails get a placeholder account.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body invitations_dto.CreateInvitationRequestDTO true "Invitation data"
// @Success 200 {object} invitations_models.WorkspaceInvitation
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{id}/invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
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

	var request invitations_dto.CreateInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if !request.Role.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	invitation, err := c.invitationService.CreateInvitation(workspaceID, &request, user)
	if err != nil {
		mapInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// ListWorkspaceInvitations
// @Summary List workspace invitations
// @Description Get all invitations for the workspace (owner only)
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} invitations_dto.ListInvitationsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/invitations [get]
func (c *InvitationController) ListWorkspaceInvitations(ctx *gin.Context) {
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

	response, err := c.invitationService.GetWorkspaceInvitations(workspaceID, user)
	if err != nil {
		mapInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListMyInvitations
// @Summary List my pending invitations
// @Description Get pending invitations addressed to the calling user's email
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} invitations_dto.ListInvitationsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /invitations/my [get]
func (c *InvitationController) ListMyInvitations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.invitationService.GetMyInvitations(user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptInvitation
// @Summary Accept invitation
// @Description Accept a pending invitation addressed to the calling user, joining the workspace
// @Tags invitations
// @Security BearerAuth
// @Param id path string true "Invitation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invitationIDStr := ctx.Param("id")
	invitationID, err := uuid.Parse(invitationIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	if err := c.invitationService.AcceptInvitation(invitationID, user); err != nil {
		mapInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation accepted successfully"})
}

// DeclineInvitation
// @Summary Decline invitation
// @Description Decline a pending invitation addressed to the calling user
// @Tags invitations
// @Security BearerAuth
// @Param id path string true "Invitation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations/{id}/decline [post]
func (c *InvitationController) DeclineInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invitationIDStr := ctx.Param("id")
	invitationID, err := uuid.Parse(invitationIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	if err := c.invitationService.DeclineInvitation(invitationID, user); err != nil {
		mapInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation declined successfully"})
}

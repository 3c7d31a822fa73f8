package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festijeux/market-api/internal/api/handler/v1/request"
	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/service"
)

type UserService interface {
	RoleChecker
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ChangeRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	Preregister(ctx context.Context, email string, role domain.Role) (domain.Preregistration, bool, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := requireRole(ctx, h.svc, domain.RoleGuest)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.svc, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleChangeRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int                        true  "user ID"
// @Param        request  body      request.ChangeRoleRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/role [put]
// @Security     BearerAuth
func (h *UserHandler) HandleChangeRole(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.svc, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.ChangeRole(ctx.Request.Context(), userID, req.ParsedRole())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleChangeRole -> h.svc.ChangeRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandlePreregister godoc
// @Summary      Preregister a role for an email
// @Description  Applies the role immediately when the account already exists.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.PreregisterRequest  true  "request body"
// @Success      200      {object}  response.PreregistrationResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/preregistrations [post]
// @Security     BearerAuth
func (h *UserHandler) HandlePreregister(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.svc, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PreregisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pre, applied, err := h.svc.Preregister(ctx.Request.Context(), req.Email, req.ParsedRole())
	if err != nil {
		err = fmt.Errorf("v1.HandlePreregister -> h.svc.Preregister -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.PreregistrationResponse{
		Preregistration:       pre,
		AppliedToExistingUser: applied,
	})
}

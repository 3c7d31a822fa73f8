package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festijeux/market-api/internal/api/handler/v1/request"
	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/api/middleware"
	"github.com/festijeux/market-api/internal/config"
	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/pkg/jwthelper"
	"github.com/festijeux/market-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   AuthService
	roles RoleChecker
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, roles RoleChecker) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		roles: roles,
	}
}

// HandleSignup godoc
// @Summary      Signup a new user
// @Description  New accounts are guests unless an admin preregistered a role for the email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.SignupRequest  true  "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleLogin godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent(), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Revokes the bearer token used for this request.
// @Tags         auth
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	value, ok := ctx.Get(middleware.ContextKeyClaims)
	claims, _ := value.(*jwthelper.Claims)
	if !ok || claims == nil || claims.ExpiresAt == nil {
		response.RenderErr(ctx, response.ErrUnauthorized(errNotAuthenticated))
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleVerifyRole godoc
// @Summary      Check the caller against a role
// @Description  Anonymous callers are treated as guests.
// @Tags         auth
// @Produce      json
// @Param        role  path      string  true  "required role"
// @Success      200   {object}  response.VerifyRoleResponse
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /auth/verify/{role} [get]
func (h *AuthHandler) HandleVerifyRole(ctx *gin.Context) {
	required, err := domain.ParseRole(ctx.Param("role"))
	if err != nil {
		response.RenderErr(ctx, response.ErrInvalidInput("role", ctx.Param("role")))
		return
	}

	userID, ok := getUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, response.VerifyRoleResponse{
			Role:       domain.RoleGuest,
			Authorized: domain.IsAuthorized(domain.RoleGuest, required),
		})
		return
	}

	user, authorized, err := h.roles.HasRole(ctx.Request.Context(), userID, required)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyRole -> h.roles.HasRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyRoleResponse{
		Role:       user.Role,
		Authorized: authorized,
	})
}

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

type SessionService interface {
	CreateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	GetSession(ctx context.Context, id uint) (domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
	UpdateSession(ctx context.Context, update domain.SessionUpdate) (domain.Session, error)
	UpdateSessions(ctx context.Context, updates []domain.SessionUpdate) ([]domain.Session, error)
}

type SessionHandler struct {
	svc   SessionService
	roles RoleChecker
}

func NewSessionHandler(svc SessionService, roles RoleChecker) *SessionHandler {
	return &SessionHandler{
		svc:   svc,
		roles: roles,
	}
}

// HandleListSessions godoc
// @Summary      List festival sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   domain.Session
// @Failure      500  {object}  response.Err
// @Router       /sessions [get]
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.ListSessions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get a festival session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  domain.Session
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleCreateSession godoc
// @Summary      Create a festival session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest  true  "request body"
// @Success      201      {object}  domain.Session
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.CreateSession(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.CreateSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleUpdateSession godoc
// @Summary      Update a festival session
// @Description  Only fields present in the body are changed.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                           true  "session ID"
// @Param        request    body      request.UpdateSessionRequest  true  "request body"
// @Success      200        {object}  domain.Session
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.UpdateSession(ctx.Request.Context(), req.ToDomain(sessionID))
	if err != nil {
		h.renderUpdateErr(ctx, "v1.HandleUpdateSession -> h.svc.UpdateSession", err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleUpdateSessions godoc
// @Summary      Update several festival sessions at once
// @Description  Either every update is saved or none is.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.BulkUpdateSessionsRequest  true  "request body"
// @Success      200      {array}   domain.Session
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSessions(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleAdmin); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BulkUpdateSessionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sessions, err := h.svc.UpdateSessions(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		h.renderUpdateErr(ctx, "v1.HandleUpdateSessions -> h.svc.UpdateSessions", err)
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) renderUpdateErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrSessionNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

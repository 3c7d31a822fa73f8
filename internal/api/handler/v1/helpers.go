package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/api/middleware"
	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/service"
)

var errNotAuthenticated = errors.New("not authenticated")

// RoleChecker reloads the caller so that role changes apply to tokens that
// were issued before them.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uint, required domain.Role) (domain.User, bool, error)
}

func getUserIDFromContext(ctx *gin.Context) (uint, bool) {
	value, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, false
	}

	id, ok := value.(uint)
	return id, ok
}

// requireRole loads the caller and checks it holds required.
func requireRole(ctx *gin.Context, checker RoleChecker, required domain.Role) (domain.User, *response.Err) {
	userID, ok := getUserIDFromContext(ctx)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	user, authorized, err := checker.HasRole(ctx.Request.Context(), userID, required)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(fmt.Errorf("user %d no longer exists", userID))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("requireRole -> checker.HasRole -> %w", err))
	}

	if !authorized {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("role %q is required", required))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrInvalidInput(name, ctx.Param(name))
	}

	return uint(id), nil
}

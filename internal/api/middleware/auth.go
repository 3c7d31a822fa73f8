package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyClaims = "jwtClaims"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errRevokedToken = errors.New("token has been revoked")
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Authenticator struct {
	signingKey []byte
	revoked    RevocationChecker
}

func NewAuthenticator(signingKey string, revoked RevocationChecker) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		revoked:    revoked,
	}
}

// VerifyJWT rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		if respErr := a.authenticate(ctx, raw); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		ctx.Next()
	}
}

// IdentifyJWT sets the caller identity when a valid token is present and
// lets anonymous requests through otherwise.
func (a *Authenticator) IdentifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if raw, ok := bearerToken(ctx); ok {
			if respErr := a.authenticate(ctx, raw); respErr != nil && respErr.HTTPStatusCode >= 500 {
				response.RenderErr(ctx, respErr)
				return
			}
		}

		ctx.Next()
	}
}

func (a *Authenticator) authenticate(ctx *gin.Context, raw string) *response.Err {
	claims, err := jwthelper.ParseToken(a.signingKey, raw)
	if err != nil {
		return response.ErrUnauthorized(err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return response.ErrUnauthorized(err)
	}

	revoked, err := a.revoked.IsRevoked(ctx.Request.Context(), claims.ID)
	if err != nil {
		return response.ErrInternalServerError(fmt.Errorf("a.revoked.IsRevoked -> %w", err))
	}
	if revoked {
		return response.ErrUnauthorized(errRevokedToken)
	}

	ctx.Set(ContextKeyUserID, userID)
	ctx.Set(ContextKeyClaims, claims)

	return nil
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}

	return strings.TrimSpace(token), true
}

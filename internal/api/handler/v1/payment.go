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

type PaymentService interface {
	PaySellerInFull(ctx context.Context, sellerEmail string) (domain.PaymentResult, error)
	SellerBalance(ctx context.Context, sellerEmail string) (domain.SellerBalance, error)
}

type PaymentHandler struct {
	svc   PaymentService
	roles RoleChecker
}

func NewPaymentHandler(svc PaymentService, roles RoleChecker) *PaymentHandler {
	return &PaymentHandler{
		svc:   svc,
		roles: roles,
	}
}

// HandlePaySeller godoc
// @Summary      Pay a seller in full
// @Description  Marks every unpaid sale of the seller as paid. Paying again updates nothing.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.PaySellerRequest  true  "request body"
// @Success      200      {object}  domain.PaymentResult
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/sellers [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandlePaySeller(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PaySellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.PaySellerInFull(ctx.Request.Context(), req.SellerEmail)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePaySeller -> h.svc.PaySellerInFull -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleGetBalance godoc
// @Summary      Seller balance
// @Tags         payments
// @Produce      json
// @Param        seller_email  query     string  true  "seller email"
// @Success      200           {object}  domain.SellerBalance
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /payments/sellers/balance [get]
// @Security     BearerAuth
func (h *PaymentHandler) HandleGetBalance(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	balance, err := h.svc.SellerBalance(ctx.Request.Context(), ctx.Query("seller_email"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetBalance -> h.svc.SellerBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, balance)
}

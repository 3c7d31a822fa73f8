package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/service"
)

type ReportService interface {
	BuildReport(ctx context.Context, filter domain.ReportFilter, fixedCharges *decimal.Decimal) (domain.Report, error)
	ListSales(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error)
}

type ReportHandler struct {
	svc   ReportService
	roles RoleChecker
}

func NewReportHandler(svc ReportService, roles RoleChecker) *ReportHandler {
	return &ReportHandler{
		svc:   svc,
		roles: roles,
	}
}

// reportQuery reads seller_email and session_id from the query string.
func reportQuery(ctx *gin.Context) (domain.ReportFilter, *response.Err) {
	var filter domain.ReportFilter

	if email := ctx.Query("seller_email"); email != "" {
		filter.SellerEmail = &email
	}

	if raw := ctx.Query("session_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return domain.ReportFilter{}, response.ErrInvalidInput("session_id", raw)
		}
		sessionID := uint(id)
		filter.SessionID = &sessionID
	}

	return filter, nil
}

// HandleListSales godoc
// @Summary      Sales history
// @Tags         reports
// @Produce      json
// @Param        seller_email  query     string  false  "filter by seller"
// @Param        session_id    query     int     false  "filter by session"
// @Success      200           {array}   domain.SaleRecord
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /sales [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleListSales(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, respErr := reportQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.listSales(ctx, filter)
}

// HandleListMySales godoc
// @Summary      Sales history of the caller
// @Tags         reports
// @Produce      json
// @Param        session_id  query     int  false  "filter by session"
// @Success      200         {array}   domain.SaleRecord
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /sales/mine [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleListMySales(ctx *gin.Context) {
	user, respErr := requireRole(ctx, h.roles, domain.RoleSeller)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, respErr := reportQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	filter.SellerEmail = &user.Email

	h.listSales(ctx, filter)
}

func (h *ReportHandler) listSales(ctx *gin.Context, filter domain.ReportFilter) {
	sales, err := h.svc.ListSales(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.listSales -> h.svc.ListSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if sales == nil {
		sales = []domain.SaleRecord{}
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleGetReport godoc
// @Summary      Sales report
// @Description  Per-sale series and totals. With nothing sold the status is "nothing_to_report".
// @Tags         reports
// @Produce      json
// @Param        seller_email   query     string  false  "filter by seller"
// @Param        session_id     query     int     false  "filter by session"
// @Param        fixed_charges  query     number  false  "overrides the session total charge"
// @Success      200            {object}  response.ReportResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reports [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleGetReport(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, respErr := reportQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.renderReport(ctx, filter)
}

// HandleGetMyReport godoc
// @Summary      Sales report of the caller
// @Tags         reports
// @Produce      json
// @Param        session_id     query     int     false  "filter by session"
// @Param        fixed_charges  query     number  false  "overrides the session total charge"
// @Success      200            {object}  response.ReportResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reports/mine [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleGetMyReport(ctx *gin.Context) {
	user, respErr := requireRole(ctx, h.roles, domain.RoleSeller)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, respErr := reportQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	filter.SellerEmail = &user.Email

	h.renderReport(ctx, filter)
}

func (h *ReportHandler) renderReport(ctx *gin.Context, filter domain.ReportFilter) {
	var fixedCharges *decimal.Decimal
	if raw := ctx.Query("fixed_charges"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidInput("fixed_charges", raw))
			return
		}
		fixedCharges = &value
	}

	report, err := h.svc.BuildReport(ctx.Request.Context(), filter, fixedCharges)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrResourceNotFound(service.ErrSessionNotFound))
		default:
			err = fmt.Errorf("v1.renderReport -> h.svc.BuildReport -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewReportResponse(report))
}

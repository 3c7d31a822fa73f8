package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festijeux/market-api/internal/api/handler/v1/request"
	"github.com/festijeux/market-api/internal/api/handler/v1/response"
	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/pkg/storage"
	"github.com/festijeux/market-api/internal/service"
)

type StockService interface {
	Deposit(ctx context.Context, in domain.DepositInput) (domain.StockItemWithFees, domain.DepositRecord, error)
	RecordSale(ctx context.Context, stockID uint, quantity int) (domain.SaleRecord, error)
	Withdraw(ctx context.Context, stockID uint, quantity int) (domain.WithdrawResult, error)
	ToggleOnSale(ctx context.Context, stockID uint, onSale bool) (domain.StockItemWithFees, error)
	GetWithFees(ctx context.Context, stockID uint) (domain.StockItemWithFees, error)
	ListAll(ctx context.Context) ([]domain.StockItemWithFees, error)
	ListForSale(ctx context.Context) ([]domain.StockItemWithFees, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItemWithFees, error)
}

type PhotoStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

type StockHandler struct {
	svc    StockService
	roles  RoleChecker
	photos PhotoStore
}

func NewStockHandler(svc StockService, roles RoleChecker, photos PhotoStore) *StockHandler {
	return &StockHandler{
		svc:    svc,
		roles:  roles,
		photos: photos,
	}
}

type depositResponse struct {
	Item    domain.StockItemWithFees `json:"item"`
	Deposit domain.DepositRecord     `json:"deposit"`
}

// HandleDeposit godoc
// @Summary      Deposit games for sale
// @Description  Accepts JSON, or a multipart form with the same fields plus an optional "image" file.
// @Tags         stock
// @Accept       json,mpfd
// @Produce      json
// @Param        request  body      request.DepositRequest  true  "request body"
// @Success      201      {object}  depositResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /deposits [post]
// @Security     BearerAuth
func (h *StockHandler) HandleDeposit(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var (
		req       request.DepositRequest
		photoPath string
	)

	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := ctx.ShouldBind(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if ctx.ContentType() == gin.MIMEMultipartPOSTForm {
		fh, err := ctx.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		default:
			photoPath, err = h.photos.Save(fh)
			if err != nil {
				if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedFileExt) {
					response.RenderErr(ctx, response.ErrBadRequest(err))
					return
				}

				err = fmt.Errorf("v1.HandleDeposit -> h.photos.Save -> %w", err)
				response.RenderErr(ctx, response.ErrInternalServerError(err))
				return
			}
		}
	}

	item, record, err := h.svc.Deposit(ctx.Request.Context(), req.ToDomain(photoPath))
	if err != nil {
		if rmErr := h.photos.Remove(photoPath); rmErr != nil {
			zap.L().Warn("orphan photo left behind", zap.String("path", photoPath), zap.Error(rmErr))
		}

		renderStockErr(ctx, "v1.HandleDeposit -> h.svc.Deposit", err)
		return
	}

	ctx.JSON(http.StatusCreated, depositResponse{
		Item:    item,
		Deposit: record,
	})
}

// HandleRecordSale godoc
// @Summary      Record a sale
// @Description  Decrements the stock and appends an unpaid sale record. Selling the last unit removes the item.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request  body      request.SaleRequest  true  "request body"
// @Success      201      {object}  domain.SaleRecord
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales [post]
// @Security     BearerAuth
func (h *StockHandler) HandleRecordSale(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.RecordSale(ctx.Request.Context(), req.StockID, req.QuantitySold)
	if err != nil {
		renderStockErr(ctx, "v1.HandleRecordSale -> h.svc.RecordSale", err)
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleWithdraw godoc
// @Summary      Withdraw games from stock
// @Description  Returns units to the seller without recording a sale.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request  body      request.WithdrawRequest  true  "request body"
// @Success      200      {object}  domain.WithdrawResult
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /withdrawals [post]
// @Security     BearerAuth
func (h *StockHandler) HandleWithdraw(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.WithdrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Withdraw(ctx.Request.Context(), req.StockID, req.QuantityToRemove)
	if err != nil {
		renderStockErr(ctx, "v1.HandleWithdraw -> h.svc.Withdraw", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleToggleOnSale godoc
// @Summary      Put a stock item on sale or take it off
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        stockID  path      int                          true  "stock item ID"
// @Param        request  body      request.ToggleOnSaleRequest  true  "request body"
// @Success      200      {object}  domain.StockItemWithFees
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stock/{stockID}/on-sale [put]
// @Security     BearerAuth
func (h *StockHandler) HandleToggleOnSale(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stockID, respErr := parseIDParam(ctx, "stockID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ToggleOnSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.ToggleOnSale(ctx.Request.Context(), stockID, *req.OnSale)
	if err != nil {
		renderStockErr(ctx, "v1.HandleToggleOnSale -> h.svc.ToggleOnSale", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleListStock godoc
// @Summary      Full stock catalogue
// @Tags         stock
// @Produce      json
// @Success      200  {array}   domain.StockItemWithFees
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stock [get]
// @Security     BearerAuth
func (h *StockHandler) HandleListStock(ctx *gin.Context) {
	if _, respErr := requireRole(ctx, h.roles, domain.RoleManager); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStock -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleListOnSale godoc
// @Summary      Games currently on sale
// @Tags         stock
// @Produce      json
// @Success      200  {array}   domain.StockItemWithFees
// @Failure      500  {object}  response.Err
// @Router       /stock/on-sale [get]
func (h *StockHandler) HandleListOnSale(ctx *gin.Context) {
	items, err := h.svc.ListForSale(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListOnSale -> h.svc.ListForSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleListMine godoc
// @Summary      Stock deposited by the caller
// @Tags         stock
// @Produce      json
// @Success      200  {array}   domain.StockItemWithFees
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stock/mine [get]
// @Security     BearerAuth
func (h *StockHandler) HandleListMine(ctx *gin.Context) {
	user, respErr := requireRole(ctx, h.roles, domain.RoleSeller)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.ListBySeller(ctx.Request.Context(), user.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMine -> h.svc.ListBySeller -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetStock godoc
// @Summary      Get a stock item with its fees and final price
// @Tags         stock
// @Produce      json
// @Param        stockID  path      int  true  "stock item ID"
// @Success      200      {object}  domain.StockItemWithFees
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stock/{stockID} [get]
func (h *StockHandler) HandleGetStock(ctx *gin.Context) {
	stockID, respErr := parseIDParam(ctx, "stockID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := h.svc.GetWithFees(ctx.Request.Context(), stockID)
	if err != nil {
		renderStockErr(ctx, "v1.HandleGetStock -> h.svc.GetWithFees", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func renderStockErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrQuantityExceedsStock):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrStockNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound(service.ErrStockNotFound))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientStock))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

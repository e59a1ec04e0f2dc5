package deposit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/controller"
	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/handler/request"
	"github.com/dwarvesf/funds-backend/internal/middleware"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/view"
)

type SubmitRequest struct {
	PlatformID      uint      `json:"platform_id" validate:"required"`
	Amount          string    `json:"amount" validate:"required,numeric"`
	PlatformAccount string    `json:"platform_account" validate:"max=255"`
	RealName        string    `json:"real_name" validate:"max=100"`
	DepositTime     time.Time `json:"deposit_time"`
	ScreenshotURL   string    `json:"screenshot_url" validate:"omitempty,url,max=500"`
	UserMessage     string    `json:"user_message" validate:"max=1000"`
}

type AdjudicateRequest struct {
	Notes          string  `json:"notes" validate:"max=1000"`
	CreditedAmount *string `json:"credited_amount" validate:"omitempty,numeric"`
}

type ListRequest struct {
	UserID     uint   `form:"user_id"`
	PlatformID uint   `form:"platform_id"`
	Status     string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit      int    `form:"limit" validate:"gte=0"`
	Offset     int    `form:"offset" validate:"gte=0"`
}

type handler struct {
	controller controller.IController
	logger     *logger.Logger
}

func New(controller controller.IController, logger *logger.Logger) IHandler {
	return &handler{
		controller: controller,
		logger:     logger,
	}
}

// Submit godoc
// @Summary Submit a deposit record
// @Description Claims an off-platform transfer; the balance is credited once an admin approves it
// @id submitDeposit
// @Tags Deposit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRequest true "Deposit record"
// @Success 201 {object} model.DepositRecord
// @Failure 400 {object} view.ErrorResponse
// @Failure 422 {object} view.ErrorResponse
// @Router /deposits [post]
func (h *handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	amount, err := request.Decimal("amount", req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	created, err := h.controller.SubmitDeposit(c.Request.Context(), middleware.ActorFrom(c), controller.DepositSubmission{
		PlatformID:      req.PlatformID,
		Amount:          amount,
		PlatformAccount: req.PlatformAccount,
		RealName:        req.RealName,
		DepositTime:     req.DepositTime,
		ScreenshotURL:   req.ScreenshotURL,
		UserMessage:     req.UserMessage,
	})
	if err != nil {
		h.logger.Error("[Submit][SubmitDeposit]", map[string]string{
			"error": err.Error(),
		})
		view.Fail(c, err, req, "")
		return
	}

	c.JSON(http.StatusCreated, view.CreateResponse(created, nil, nil, ""))
}

// Get godoc
// @Summary Get a deposit record
// @id getDeposit
// @Tags Deposit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Success 200 {object} model.DepositRecord
// @Failure 403 {object} view.ErrorResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /deposits/{id} [get]
func (h *handler) Get(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	found, err := h.controller.GetDeposit(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		view.Fail(c, err, nil, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(found, nil, nil, ""))
}

// List godoc
// @Summary List deposit records
// @Description Users see their own records; admins may filter by user, platform and status
// @id listDeposits
// @Tags Deposit
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param platform_id query int false "Platform ID"
// @Param user_id query int false "User ID (admin only)"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Offset"
// @Success 200 {object} controller.Page[model.DepositRecord]
// @Router /deposits [get]
func (h *handler) List(c *gin.Context) {
	var req ListRequest
	if err := request.BindQuery(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	page, err := h.controller.ListDeposits(c.Request.Context(), middleware.ActorFrom(c), controller.ListQuery{
		UserID:     req.UserID,
		PlatformID: req.PlatformID,
		Status:     model.RequestStatus(req.Status),
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		h.logger.Error("[List][ListDeposits]", map[string]string{
			"error": err.Error(),
		})
		view.Fail(c, err, req, "failed to list deposits")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(page, nil, nil, ""))
}

// Cancel godoc
// @Summary Cancel a pending deposit record
// @id cancelDeposit
// @Tags Deposit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Success 200 {object} view.MessageResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /deposits/{id} [delete]
func (h *handler) Cancel(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	if err := h.controller.CancelDeposit(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		view.Fail(c, err, nil, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse("deposit cancelled", nil, nil, ""))
}

// Approve godoc
// @Summary Approve a deposit record
// @Description Credits credited_amount, or the submitted amount when omitted, to the owner's balance
// @id approveDeposit
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Param request body AdjudicateRequest false "Notes and credited amount"
// @Success 200 {object} model.DepositRecord
// @Failure 409 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /admin/deposits/{id}/approve [post]
func (h *handler) Approve(c *gin.Context) {
	h.adjudicate(c, funds.ActionApprove)
}

// Reject godoc
// @Summary Reject a deposit record
// @Description A non-empty reason is required
// @id rejectDeposit
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Param request body AdjudicateRequest true "Reason"
// @Success 200 {object} model.DepositRecord
// @Failure 409 {object} view.ErrorResponse
// @Router /admin/deposits/{id}/reject [post]
func (h *handler) Reject(c *gin.Context) {
	h.adjudicate(c, funds.ActionReject)
}

func (h *handler) adjudicate(c *gin.Context, action funds.Action) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	var req AdjudicateRequest
	if c.Request.ContentLength != 0 {
		if err := request.Bind(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
			return
		}
	}

	credited, err := request.OptionalDecimal("credited_amount", req.CreditedAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	settled, err := h.controller.AdjudicateDeposit(c.Request.Context(), middleware.ActorFrom(c), id, controller.AdjudicationInput{
		Action:         action,
		Notes:          req.Notes,
		CreditedAmount: credited,
	})
	if err != nil {
		view.Fail(c, err, req, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(settled, nil, nil, ""))
}

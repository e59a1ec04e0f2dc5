package platform

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/catalog"
	"github.com/dwarvesf/funds-backend/internal/handler/request"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/view"
)

type handler struct {
	catalog catalog.ICatalog
	logger  *logger.Logger
}

func New(catalog catalog.ICatalog, logger *logger.Logger) IHandler {
	return &handler{
		catalog: catalog,
		logger:  logger,
	}
}

func (h *handler) fail(c *gin.Context, tag string, err error, req any) {
	h.logger.Error(tag, map[string]string{
		"error": err.Error(),
	})
	view.Fail(c, err, req, "")
}

// ListActiveWithdrawal godoc
// @Summary List active withdrawal platforms
// @id listActiveWithdrawalPlatforms
// @Tags Platform
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WithdrawalPlatform
// @Router /platforms/withdrawal [get]
func (h *handler) ListActiveWithdrawal(c *gin.Context) {
	platforms, err := h.catalog.ListActiveWithdrawalPlatforms(c.Request.Context())
	if err != nil {
		h.fail(c, "[ListActiveWithdrawal][ListActiveWithdrawalPlatforms]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platforms, nil, nil, ""))
}

// ListActiveDeposit godoc
// @Summary List active deposit platforms
// @id listActiveDepositPlatforms
// @Tags Platform
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DepositPlatform
// @Router /platforms/deposit [get]
func (h *handler) ListActiveDeposit(c *gin.Context) {
	platforms, err := h.catalog.ListActiveDepositPlatforms(c.Request.Context())
	if err != nil {
		h.fail(c, "[ListActiveDeposit][ListActiveDepositPlatforms]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platforms, nil, nil, ""))
}

// ListWithdrawal godoc
// @Summary List all withdrawal platforms
// @id listWithdrawalPlatforms
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WithdrawalPlatform
// @Router /admin/platforms/withdrawal [get]
func (h *handler) ListWithdrawal(c *gin.Context) {
	platforms, err := h.catalog.ListWithdrawalPlatforms(c.Request.Context())
	if err != nil {
		h.fail(c, "[ListWithdrawal][ListWithdrawalPlatforms]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platforms, nil, nil, ""))
}

// GetWithdrawal godoc
// @Summary Get a withdrawal platform
// @id getWithdrawalPlatform
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Success 200 {object} model.WithdrawalPlatform
// @Failure 404 {object} view.ErrorResponse
// @Router /admin/platforms/withdrawal/{id} [get]
func (h *handler) GetWithdrawal(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	platform, err := h.catalog.GetWithdrawalPlatform(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, nil, "")
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platform, nil, nil, ""))
}

// CreateWithdrawal godoc
// @Summary Create a withdrawal platform
// @id createWithdrawalPlatform
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WithdrawalPlatformRequest true "Platform"
// @Success 201 {object} model.WithdrawalPlatform
// @Failure 422 {object} view.ErrorResponse
// @Router /admin/platforms/withdrawal [post]
func (h *handler) CreateWithdrawal(c *gin.Context) {
	var req WithdrawalPlatformRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	platform, err := req.toModel(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	created, err := h.catalog.CreateWithdrawalPlatform(c.Request.Context(), platform)
	if err != nil {
		h.fail(c, "[CreateWithdrawal][CreateWithdrawalPlatform]", err, req)
		return
	}
	c.JSON(http.StatusCreated, view.CreateResponse(created, nil, nil, ""))
}

// UpdateWithdrawal godoc
// @Summary Replace a withdrawal platform
// @Description Deactivating a platform only blocks new submissions. An omitted is_active keeps the current value
// @id updateWithdrawalPlatform
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Param request body WithdrawalPlatformRequest true "Platform"
// @Success 200 {object} model.WithdrawalPlatform
// @Failure 422 {object} view.ErrorResponse
// @Router /admin/platforms/withdrawal/{id} [put]
func (h *handler) UpdateWithdrawal(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}
	var req WithdrawalPlatformRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	if req.IsActive == nil {
		existing, err := h.catalog.GetWithdrawalPlatform(c.Request.Context(), id)
		if err != nil {
			h.fail(c, "[UpdateWithdrawal][GetWithdrawalPlatform]", err, req)
			return
		}
		req.IsActive = &existing.IsActive
	}
	platform, err := req.toModel(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	updated, err := h.catalog.UpdateWithdrawalPlatform(c.Request.Context(), platform)
	if err != nil {
		h.fail(c, "[UpdateWithdrawal][UpdateWithdrawalPlatform]", err, req)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(updated, nil, nil, ""))
}

// DeleteWithdrawal godoc
// @Summary Delete a withdrawal platform
// @Description Refused while any request references the platform
// @id deleteWithdrawalPlatform
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Success 200 {object} view.MessageResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /admin/platforms/withdrawal/{id} [delete]
func (h *handler) DeleteWithdrawal(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	if err := h.catalog.DeleteWithdrawalPlatform(c.Request.Context(), id); err != nil {
		h.fail(c, "[DeleteWithdrawal][DeleteWithdrawalPlatform]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse("platform deleted", nil, nil, ""))
}

// ListDeposit godoc
// @Summary List all deposit platforms
// @id listDepositPlatforms
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DepositPlatform
// @Router /admin/platforms/deposit [get]
func (h *handler) ListDeposit(c *gin.Context) {
	platforms, err := h.catalog.ListDepositPlatforms(c.Request.Context())
	if err != nil {
		h.fail(c, "[ListDeposit][ListDepositPlatforms]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platforms, nil, nil, ""))
}

// GetDeposit godoc
// @Summary Get a deposit platform
// @id getDepositPlatform
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Success 200 {object} model.DepositPlatform
// @Failure 404 {object} view.ErrorResponse
// @Router /admin/platforms/deposit/{id} [get]
func (h *handler) GetDeposit(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	platform, err := h.catalog.GetDepositPlatform(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, nil, "")
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(platform, nil, nil, ""))
}

// CreateDeposit godoc
// @Summary Create a deposit platform
// @id createDepositPlatform
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositPlatformRequest true "Platform"
// @Success 201 {object} model.DepositPlatform
// @Failure 422 {object} view.ErrorResponse
// @Router /admin/platforms/deposit [post]
func (h *handler) CreateDeposit(c *gin.Context) {
	var req DepositPlatformRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	platform, err := req.toModel(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	created, err := h.catalog.CreateDepositPlatform(c.Request.Context(), platform)
	if err != nil {
		h.fail(c, "[CreateDeposit][CreateDepositPlatform]", err, req)
		return
	}
	c.JSON(http.StatusCreated, view.CreateResponse(created, nil, nil, ""))
}

// UpdateDeposit godoc
// @Summary Replace a deposit platform
// @id updateDepositPlatform
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Param request body DepositPlatformRequest true "Platform"
// @Success 200 {object} model.DepositPlatform
// @Failure 422 {object} view.ErrorResponse
// @Router /admin/platforms/deposit/{id} [put]
func (h *handler) UpdateDeposit(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}
	var req DepositPlatformRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	if req.IsActive == nil {
		existing, err := h.catalog.GetDepositPlatform(c.Request.Context(), id)
		if err != nil {
			h.fail(c, "[UpdateDeposit][GetDepositPlatform]", err, req)
			return
		}
		req.IsActive = &existing.IsActive
	}
	platform, err := req.toModel(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	updated, err := h.catalog.UpdateDepositPlatform(c.Request.Context(), platform)
	if err != nil {
		h.fail(c, "[UpdateDeposit][UpdateDepositPlatform]", err, req)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(updated, nil, nil, ""))
}

// DeleteDeposit godoc
// @Summary Delete a deposit platform
// @Description Refused while any record references the platform
// @id deleteDepositPlatform
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Platform ID"
// @Success 200 {object} view.MessageResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /admin/platforms/deposit/{id} [delete]
func (h *handler) DeleteDeposit(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	if err := h.catalog.DeleteDepositPlatform(c.Request.Context(), id); err != nil {
		h.fail(c, "[DeleteDeposit][DeleteDepositPlatform]", err, nil)
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse("platform deleted", nil, nil, ""))
}

package balance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/controller"
	"github.com/dwarvesf/funds-backend/internal/middleware"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/view"
)

type IHandler interface {
	Get(c *gin.Context)
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

// Get godoc
// @Summary Get the caller's balance
// @Description reserved is the amount plus fee of pending withdrawals; available = balance - reserved
// @id getBalance
// @Tags Balance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controller.BalanceView
// @Failure 503 {object} view.ErrorResponse
// @Router /me/balance [get]
func (h *handler) Get(c *gin.Context) {
	balance, err := h.controller.GetBalance(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.logger.Error("[Get][GetBalance]", map[string]string{
			"error": err.Error(),
		})
		view.Fail(c, err, nil, "")
		return
	}
	c.JSON(http.StatusOK, view.CreateResponse(balance, nil, nil, ""))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
)

const balanceDateLayout = "2006-01-02"

// balanceHandler handles HTTP requests for derived balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: balanceService,
	}
}

// registerBalanceRoutes registers the balance query routes.
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	accounts := group.Group("/accounts")
	accounts.GET("/:accountID/balance", h.getBalance)
}

// getBalance godoc
// @Summary Get a derived account balance
// @Description Sums posting deltas up to asOf; without the instrumentID query the cash balance is returned, with it the instrument holding
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Param   instrumentID query string false "Instrument ID for a holding instead of the cash balance"
// @Success 200 {object} dto.BalanceResponse "The derived balance"
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to derive balance"
// @Router /accounts/{accountID}/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	asOf := time.Now().UTC()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.ParseInLocation(balanceDateLayout, asOfStr, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be a YYYY-MM-DD date"})
			return
		}
		asOf = parsed
	}

	instrumentID := c.Query("instrumentID")

	var balance decimal.Decimal
	var err error
	if instrumentID == "" {
		balance, err = h.balanceService.CashBalance(c.Request.Context(), accountID, asOf)
	} else {
		balance, err = h.balanceService.InstrumentHolding(c.Request.Context(), accountID, instrumentID, asOf)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to derive balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:    accountID,
		InstrumentID: instrumentID,
		AsOf:         asOf.Format(balanceDateLayout),
		Balance:      balance,
	})
}

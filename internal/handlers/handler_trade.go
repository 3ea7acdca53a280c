package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
)

const defaultHistoryLimit = "50"

// tradeHandler handles HTTP requests related to trades.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

// newTradeHandler creates a new tradeHandler.
func newTradeHandler(tradeService portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{
		tradeService: tradeService,
	}
}

// registerTradeRoutes registers all trade ledger routes.
func registerTradeRoutes(group *gin.RouterGroup, tradeService portssvc.TradeSvcFacade) {
	h := newTradeHandler(tradeService)

	trades := group.Group("/trades")
	{
		trades.POST("", h.createTrade)
		trades.GET("", h.listTrades)
		trades.GET("/:tradeID/edit", h.getTradeForEdit)
		trades.PUT("/:tradeID", h.updateTrade)
		trades.DELETE("/:tradeID", h.deleteTrade)
		trades.POST("/:tradeID/reverse", h.reverseTrade)
	}
}

// createTrade godoc
// @Summary Record a trade
// @Description Validates the trade, snapshots the FX rate, computes both legs and persists everything atomically
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade body dto.TradeRequest true "Trade details"
// @Success 201 {object} dto.TradeResponse "The recorded trade"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Unknown instrument or account"
// @Failure 500 {object} map[string]string "Failed to record trade"
// @Router /trades [post]
func (h *tradeHandler) createTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.TradeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), req)
	if err != nil {
		respondTradeError(c, logger, err, "Failed to record trade")
		return
	}

	logger.Info("Trade recorded", slog.String("trade_id", trade.TradeID))
	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// updateTrade godoc
// @Summary Update a trade
// @Description Re-validates the trade exactly like creation and replaces header and legs in one transaction
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Param   trade body dto.TradeRequest true "Updated trade details"
// @Success 200 {object} dto.TradeResponse "The updated trade"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to update trade"
// @Router /trades/{tradeID} [put]
func (h *tradeHandler) updateTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")

	req := dto.TradeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.UpdateTrade(c.Request.Context(), tradeID, req)
	if err != nil {
		respondTradeError(c, logger, err, "Failed to update trade")
		return
	}

	logger.Info("Trade updated", slog.String("trade_id", tradeID))
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// deleteTrade godoc
// @Summary Delete a trade
// @Description Removes the trade header and both legs in one transaction
// @Tags trades
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Success 204 "Trade deleted"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to delete trade"
// @Router /trades/{tradeID} [delete]
func (h *tradeHandler) deleteTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")

	if err := h.tradeService.DeleteTrade(c.Request.Context(), tradeID); err != nil {
		respondTradeError(c, logger, err, "Failed to delete trade")
		return
	}

	logger.Info("Trade deleted", slog.String("trade_id", tradeID))
	c.Status(http.StatusNoContent)
}

// getTradeForEdit godoc
// @Summary Fetch a trade in edit form
// @Description Reconstructs the original input parameters from the stored header and legs
// @Tags trades
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Success 200 {object} dto.EditTradeResponse "The reconstructed input"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to fetch trade"
// @Router /trades/{tradeID}/edit [get]
func (h *tradeHandler) getTradeForEdit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")

	input, err := h.tradeService.GetTradeForEdit(c.Request.Context(), tradeID)
	if err != nil {
		respondTradeError(c, logger, err, "Failed to fetch trade")
		return
	}

	logger.Debug("Trade fetched for edit", slog.String("trade_id", tradeID))
	c.JSON(http.StatusOK, dto.ToEditTradeResponse(input))
}

// listTrades godoc
// @Summary List trade history
// @Description Returns the denormalized trade history, most recent trade date first
// @Tags trades
// @Produce  json
// @Param   limit query int false "Maximum number of trades to return" default(50)
// @Success 200 {object} dto.ListTradesResponse "The trade history"
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Failed to list trades"
// @Router /trades [get]
func (h *tradeHandler) listTrades(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", defaultHistoryLimit))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := h.tradeService.ListTradeHistory(c.Request.Context(), limit)
	if err != nil {
		respondTradeError(c, logger, err, "Failed to list trades")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTradesResponse(entries))
}

// reverseTrade godoc
// @Summary Reverse a trade
// @Description Records a new opposite-direction trade that nets the original to zero, reusing its FX rate
// @Tags trades
// @Produce  json
// @Param   tradeID path string true "Trade ID"
// @Success 201 {object} dto.TradeResponse "The reversing trade"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 500 {object} map[string]string "Failed to reverse trade"
// @Router /trades/{tradeID}/reverse [post]
func (h *tradeHandler) reverseTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("tradeID")

	reversal, err := h.tradeService.ReverseTrade(c.Request.Context(), tradeID)
	if err != nil {
		respondTradeError(c, logger, err, "Failed to reverse trade")
		return
	}

	logger.Info("Trade reversed",
		slog.String("trade_id", tradeID),
		slog.String("reversal_trade_id", reversal.TradeID),
	)
	c.JSON(http.StatusCreated, dto.ToTradeResponse(reversal))
}

// respondTradeError maps service errors onto HTTP statuses.
func respondTradeError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrInstrumentNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrCurrencyMismatch),
		errors.Is(err, apperrors.ErrMissingFXRate),
		errors.Is(err, apperrors.ErrMissingCashInstrument):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

package services

import (
	"context"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
)

// TradeSvcFacade is the trade ledger's mutation and query surface: leg
// computation, atomic persistence, fetch-for-edit reconstruction and reversal.
type TradeSvcFacade interface {
	// CreateTrade validates the request, computes both legs and persists the
	// trade atomically. Nothing is written if any validation step fails.
	CreateTrade(ctx context.Context, req dto.TradeRequest) (*domain.Trade, error)
	// UpdateTrade re-validates currency and FX exactly like creation, then
	// replaces the header and both legs in one transaction.
	UpdateTrade(ctx context.Context, tradeID string, req dto.TradeRequest) (*domain.Trade, error)
	DeleteTrade(ctx context.Context, tradeID string) error

	// GetTradeForEdit reconstructs the original input parameters from the
	// header and both legs. A trade missing either leg is corrupt and reported
	// as not found.
	GetTradeForEdit(ctx context.Context, tradeID string) (*domain.TradeInput, error)

	ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error)

	// ReverseTrade persists a brand-new opposite-direction trade referencing
	// the original by note text and returns it.
	ReverseTrade(ctx context.Context, tradeID string) (*domain.Trade, error)
}

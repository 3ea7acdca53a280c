package mapping

import (
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/pfmgr/portfolio_ledger_app/internal/models"
)

// ToModelTrade converts a domain Trade to a model Trade
func ToModelTrade(d domain.Trade) models.Trade {
	return models.Trade{
		TradeID:       d.TradeID,
		TypeCode:      models.TradeTypeCode(d.TypeCode),
		TradeDate:     ToModelDate(d.TradeDate),
		InstrumentID:  d.InstrumentID,
		Quantity:      d.Quantity,
		PriceTxn:      d.PriceTxn,
		CurrencyCode:  d.CurrencyCode,
		FeesCHF:       d.FeesCHF,
		CommissionCHF: d.CommissionCHF,
		FxCHFToTxn:    d.FxCHFToTxn,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrade converts a model Trade to a domain Trade
func ToDomainTrade(m models.Trade) (domain.Trade, error) {
	tradeDate, err := ToDomainDate(m.TradeDate)
	if err != nil {
		return domain.Trade{}, err
	}
	return domain.Trade{
		TradeID:       m.TradeID,
		TypeCode:      domain.TradeType(m.TypeCode),
		TradeDate:     tradeDate,
		InstrumentID:  m.InstrumentID,
		Quantity:      m.Quantity,
		PriceTxn:      m.PriceTxn,
		CurrencyCode:  m.CurrencyCode,
		FeesCHF:       m.FeesCHF,
		CommissionCHF: m.CommissionCHF,
		FxCHFToTxn:    m.FxCHFToTxn,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelTradeLeg converts a domain TradeLeg to a model TradeLeg
func ToModelTradeLeg(d domain.TradeLeg) models.TradeLeg {
	return models.TradeLeg{
		LegID:         d.LegID,
		TradeID:       d.TradeID,
		LegType:       models.LegTypeCode(d.LegType),
		AccountID:     d.AccountID,
		InstrumentID:  d.InstrumentID,
		DeltaQuantity: d.DeltaQuantity,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTradeLeg converts a model TradeLeg to a domain TradeLeg
func ToDomainTradeLeg(m models.TradeLeg) domain.TradeLeg {
	return domain.TradeLeg{
		LegID:         m.LegID,
		TradeID:       m.TradeID,
		LegType:       domain.LegType(m.LegType),
		AccountID:     m.AccountID,
		InstrumentID:  m.InstrumentID,
		DeltaQuantity: m.DeltaQuantity,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTradeLegSlice converts a slice of model TradeLegs to domain TradeLegs
func ToDomainTradeLegSlice(ms []models.TradeLeg) []domain.TradeLeg {
	legs := make([]domain.TradeLeg, len(ms))
	for i, m := range ms {
		legs[i] = ToDomainTradeLeg(m)
	}
	return legs
}

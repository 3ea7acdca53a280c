package mapping

import (
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/pfmgr/portfolio_ledger_app/internal/models"
)

// ToDomainInstrument converts a model Instrument to a domain Instrument
func ToDomainInstrument(m models.Instrument) domain.Instrument {
	return domain.Instrument{
		InstrumentID: m.InstrumentID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		IsCash:       m.IsCash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		DisplayName:  m.DisplayName,
		CurrencyCode: m.CurrencyCode,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate
func ToDomainFxRate(m models.FxRate) (domain.FxRate, error) {
	rateDate, err := ToDomainDate(m.RateDate)
	if err != nil {
		return domain.FxRate{}, err
	}
	return domain.FxRate{
		FxRateID:     m.FxRateID,
		CurrencyCode: m.CurrencyCode,
		RateToCHF:    m.RateToCHF,
		RateDate:     rateDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

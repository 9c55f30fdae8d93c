package mapping

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrency:   d.FromCurrency,
		ToCurrency:     d.ToCurrency,
		Rate:           d.Rate,
		EffectiveDate:  d.EffectiveDate.UTC(),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrency:   m.FromCurrency,
		ToCurrency:     m.ToCurrency,
		Rate:           m.Rate,
		EffectiveDate:  m.EffectiveDate.UTC(),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}

func ToModelCurrencyAccount(d domain.CurrencyAccount) models.CurrencyAccount {
	return models.CurrencyAccount{
		AccountID:    d.AccountID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Balance:      d.Balance,
		OpeningRate:  d.OpeningRate,
		GLAccountID:  NullableString(d.GLAccountID),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCurrencyAccount(m models.CurrencyAccount) domain.CurrencyAccount {
	return domain.CurrencyAccount{
		AccountID:    m.AccountID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		OpeningRate:  m.OpeningRate,
		GLAccountID:  StringValue(m.GLAccountID),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCurrencyAccountSlice(ms []models.CurrencyAccount) []domain.CurrencyAccount {
	ds := make([]domain.CurrencyAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyAccount(m)
	}
	return ds
}

func ToModelRevaluation(d domain.RevaluationEntry) models.RevaluationEntry {
	return models.RevaluationEntry{
		RevaluationID:      d.RevaluationID,
		TenantID:           d.TenantID,
		AccountID:          d.AccountID,
		Period:             d.Period,
		CurrencyCode:       d.CurrencyCode,
		ForeignBalance:     d.ForeignBalance,
		PreviousRate:       d.PreviousRate,
		CurrentRate:        d.CurrentRate,
		PreviousValue:      d.PreviousValue,
		CurrentValue:       d.CurrentValue,
		UnrealizedGainLoss: d.UnrealizedGainLoss,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainRevaluation(m models.RevaluationEntry) domain.RevaluationEntry {
	return domain.RevaluationEntry{
		RevaluationID:      m.RevaluationID,
		TenantID:           m.TenantID,
		AccountID:          m.AccountID,
		Period:             m.Period,
		CurrencyCode:       m.CurrencyCode,
		ForeignBalance:     m.ForeignBalance,
		PreviousRate:       m.PreviousRate,
		CurrentRate:        m.CurrentRate,
		PreviousValue:      m.PreviousValue,
		CurrentValue:       m.CurrentValue,
		UnrealizedGainLoss: m.UnrealizedGainLoss,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainRevaluationSlice(ms []models.RevaluationEntry) []domain.RevaluationEntry {
	ds := make([]domain.RevaluationEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRevaluation(m)
	}
	return ds
}

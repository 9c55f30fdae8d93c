package mapping

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
)

func ToModelFixedAsset(d domain.FixedAsset) models.FixedAsset {
	return models.FixedAsset{
		AssetID:                 d.AssetID,
		TenantID:                d.TenantID,
		AssetNumber:             d.AssetNumber,
		Name:                    d.Name,
		AllowanceClass:          string(d.AllowanceClass),
		AcquisitionDate:         d.AcquisitionDate.UTC(),
		AcquisitionCost:         d.AcquisitionCost,
		TotalCapitalizedCost:    d.TotalCapitalizedCost,
		DepreciationMethod:      string(d.DepreciationMethod),
		UsefulLifeMonths:        d.UsefulLifeMonths,
		ResidualValue:           d.ResidualValue,
		AnnualDepreciationRate:  d.AnnualDepreciationRate,
		AccumulatedDepreciation: d.AccumulatedDepreciation,
		NetBookValue:            d.NetBookValue,
		LastDepreciationPeriod:  d.LastDepreciationPeriod,
		TaxEligibleCost:         d.TaxEligibleCost,
		AccumulatedAllowances:   d.AccumulatedAllowances,
		WrittenDownValue:        d.WrittenDownValue,
		LastAllowanceYear:       d.LastAllowanceYear,
		Status:                  string(d.Status),
		DisposedAt:              utcPtr(d.DisposedAt),
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFixedAsset(m models.FixedAsset) domain.FixedAsset {
	return domain.FixedAsset{
		AssetID:                 m.AssetID,
		TenantID:                m.TenantID,
		AssetNumber:             m.AssetNumber,
		Name:                    m.Name,
		AllowanceClass:          domain.AllowanceClass(m.AllowanceClass),
		AcquisitionDate:         m.AcquisitionDate.UTC(),
		AcquisitionCost:         m.AcquisitionCost,
		TotalCapitalizedCost:    m.TotalCapitalizedCost,
		DepreciationMethod:      domain.DepreciationMethod(m.DepreciationMethod),
		UsefulLifeMonths:        m.UsefulLifeMonths,
		ResidualValue:           m.ResidualValue,
		AnnualDepreciationRate:  m.AnnualDepreciationRate,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		NetBookValue:            m.NetBookValue,
		LastDepreciationPeriod:  m.LastDepreciationPeriod,
		TaxEligibleCost:         m.TaxEligibleCost,
		AccumulatedAllowances:   m.AccumulatedAllowances,
		WrittenDownValue:        m.WrittenDownValue,
		LastAllowanceYear:       m.LastAllowanceYear,
		Status:                  domain.AssetStatus(m.Status),
		DisposedAt:              utcPtr(m.DisposedAt),
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFixedAssetSlice(ms []models.FixedAsset) []domain.FixedAsset {
	ds := make([]domain.FixedAsset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFixedAsset(m)
	}
	return ds
}

func ToModelDisposal(d domain.DisposalRecord) models.DisposalRecord {
	return models.DisposalRecord{
		DisposalID:         d.DisposalID,
		TenantID:           d.TenantID,
		AssetID:            d.AssetID,
		DisposalNumber:     d.DisposalNumber,
		DisposalDate:       d.DisposalDate.UTC(),
		Method:             string(d.Method),
		Proceeds:           d.Proceeds,
		NetBookValue:       d.NetBookValue,
		BookGainLoss:       d.BookGainLoss,
		WrittenDownValue:   d.WrittenDownValue,
		TaxBalancingAmount: d.TaxBalancingAmount,
		BalancingCharge:    d.BalancingCharge,
		BalancingAllowance: d.BalancingAllowance,
		Notes:              d.Notes,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainDisposal(m models.DisposalRecord) domain.DisposalRecord {
	return domain.DisposalRecord{
		DisposalID:         m.DisposalID,
		TenantID:           m.TenantID,
		AssetID:            m.AssetID,
		DisposalNumber:     m.DisposalNumber,
		DisposalDate:       m.DisposalDate.UTC(),
		Method:             domain.DisposalMethod(m.Method),
		Proceeds:           m.Proceeds,
		NetBookValue:       m.NetBookValue,
		BookGainLoss:       m.BookGainLoss,
		WrittenDownValue:   m.WrittenDownValue,
		TaxBalancingAmount: m.TaxBalancingAmount,
		BalancingCharge:    m.BalancingCharge,
		BalancingAllowance: m.BalancingAllowance,
		Notes:              m.Notes,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

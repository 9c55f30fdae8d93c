package mapping

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
)

func ToModelSpecialPayment(d domain.SpecialPayment) models.SpecialPayment {
	return models.SpecialPayment{
		PaymentID:      d.PaymentID,
		TenantID:       d.TenantID,
		EmployeeID:     d.EmployeeID,
		PaymentType:    string(d.PaymentType),
		PaymentDate:    d.PaymentDate.UTC(),
		GrossAmount:    d.GrossAmount,
		IncomeTax:      d.IncomeTax,
		NIS:            d.NIS,
		NHT:            d.NHT,
		EducationTax:   d.EducationTax,
		NetAmount:      d.NetAmount,
		TaxExempt:      d.TaxExempt,
		JournalEntryID: NullableString(d.JournalEntryID),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSpecialPaymentSlice(ms []models.SpecialPayment) []domain.SpecialPayment {
	ds := make([]domain.SpecialPayment, len(ms))
	for i, m := range ms {
		ds[i] = domain.SpecialPayment{
			PaymentID:      m.PaymentID,
			TenantID:       m.TenantID,
			EmployeeID:     m.EmployeeID,
			PaymentType:    domain.SpecialPaymentType(m.PaymentType),
			PaymentDate:    m.PaymentDate.UTC(),
			GrossAmount:    m.GrossAmount,
			IncomeTax:      m.IncomeTax,
			NIS:            m.NIS,
			NHT:            m.NHT,
			EducationTax:   m.EducationTax,
			NetAmount:      m.NetAmount,
			TaxExempt:      m.TaxExempt,
			JournalEntryID: StringValue(m.JournalEntryID),
			Notes:          m.Notes,
			AuditFields:    ToDomainAuditFields(m.AuditFields),
		}
	}
	return ds
}

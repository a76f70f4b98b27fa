package service

import (
	markupdomain "shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/rates/domain"
)

// ApplyMarkup prices raw courier quotes with the platform markup rule.
// A nil rule passes raw prices through. The function is pure.
func ApplyMarkup(raw []domain.RateQuote, rule *markupdomain.MarkupRule, mode domain.PaymentMode) []domain.FinalQuote {
	final := make([]domain.FinalQuote, 0, len(raw))
	for _, q := range raw {
		final = append(final, priceQuote(q, rule, mode))
	}
	return final
}

func priceQuote(q domain.RateQuote, rule *markupdomain.MarkupRule, mode domain.PaymentMode) domain.FinalQuote {
	freight := q.RawFreightCharge
	cod := 0.0

	if mode == domain.PaymentModeCOD {
		cod = q.RawCodCharge
	}

	if rule != nil {
		freight += markupAmount(rule.FreightChargeType, rule.FreightChargeAmount, q.RawFreightCharge)

		if mode == domain.PaymentModeCOD {
			// A percentage of nothing stays nothing; a fixed COD markup is added even when the courier charges no fee.
			if rule.CodChargeType == markupdomain.ChargeTypeFixed || q.RawCodCharge > 0 {
				cod += markupAmount(rule.CodChargeType, rule.CodChargeAmount, q.RawCodCharge)
			}
		}
	}

	finalFreight := domain.Round2(freight)
	finalCod := domain.Round2(cod)

	return domain.FinalQuote{
		RateQuote:          q,
		FinalFreightCharge: finalFreight,
		FinalCodCharge:     finalCod,
		FinalTotalPrice:    domain.Round2(finalFreight + finalCod),
	}
}

func markupAmount(t markupdomain.ChargeType, amount, raw float64) float64 {
	if t == markupdomain.ChargeTypePercentage {
		return raw * amount / 100
	}
	return amount
}

package taxfolio

// TaxSummary is the downstream summary of a gains report: the total
// realized gain of the year reduced by the personal exemption, and the
// tax due on the remainder.
type TaxSummary struct {
	Year           int
	TotalGain      Money
	Exemption      Money
	ChargeableGain Money // TotalGain minus Exemption, floored at zero
	TaxRate        Quantity
	TaxDue         Money
}

// NewTaxSummary computes the chargeable gain for the report's year.
// A year closed at a loss, or with gains under the exemption, owes
// nothing; losses are not carried anywhere by this computation.
func NewTaxSummary(report *GainsReport, cfg Config) *TaxSummary {
	s := &TaxSummary{
		Year:      report.Year,
		TotalGain: report.TotalGain,
		Exemption: cfg.PersonalExemption,
		TaxRate:   cfg.TaxRate,
	}

	chargeable := report.TotalGain.Sub(cfg.PersonalExemption)
	if chargeable.IsNegative() {
		chargeable = M(0, cfg.Currency)
	}
	s.ChargeableGain = chargeable
	s.TaxDue = chargeable.Mul(cfg.TaxRate)
	return s
}

package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

var maxTaxRate = decimal.NewFromInt(1)

// ValidateTerms checks amounts of a single rule
func ValidateTerms(entity string, terms domain.PricingTerms) error {
	if terms.HourlyRatePerCleaner.IsNegative() {
		return domain.NewIntegrityError(entity, "hourly rate must not be negative")
	}
	if terms.MaterialsPricePerCleaner.IsNegative() {
		return domain.NewIntegrityError(entity, "materials price must not be negative")
	}
	if terms.TaxRate.IsNegative() || terms.TaxRate.GreaterThan(maxTaxRate) {
		return domain.NewIntegrityError(entity, "tax rate %s must be within [0, 1]", terms.TaxRate)
	}
	if len(terms.Currency) != 3 || strings.ToUpper(terms.Currency) != terms.Currency {
		return domain.NewIntegrityError(entity, "currency %q must be an upper-case ISO 4217 code", terms.Currency)
	}
	return nil
}

func validateInterval(entity string, id int64, e domain.EffectivePeriod) error {
	if e.From.IsZero() {
		return domain.NewIntegrityError(entity, "rule #%d has no effective start", id)
	}
	if e.To != nil && !e.To.After(e.From) {
		return domain.NewIntegrityError(entity, "rule #%d ends before it starts", id)
	}
	return nil
}

// ValidateChannelRules checks that active rules of each channel have
// non-overlapping effective intervals.
func ValidateChannelRules(rules []domain.ChannelPricingRule) error {
	for i := range rules {
		r := &rules[i]
		if err := ValidateTerms(domain.EntityChannelRule, r.PricingTerms); err != nil {
			return err
		}
		if err := validateInterval(domain.EntityChannelRule, r.ID, r.Effective); err != nil {
			return err
		}
		if !r.IsActive {
			continue
		}

		for j := 0; j < i; j++ {
			o := &rules[j]
			if o.IsActive && o.ChannelID == r.ChannelID && o.Effective.Overlaps(r.Effective) {
				return domain.NewIntegrityError(domain.EntityChannelRule,
					"active rules #%d and #%d of channel %d overlap", o.ID, r.ID, r.ChannelID)
			}
		}
	}
	return nil
}

// ValidateAreaRules is ValidateChannelRules for area overrides
func ValidateAreaRules(rules []domain.AreaPricingRule) error {
	for i := range rules {
		r := &rules[i]
		if err := ValidateTerms(domain.EntityAreaRule, r.PricingTerms); err != nil {
			return err
		}
		if err := validateInterval(domain.EntityAreaRule, r.ID, r.Effective); err != nil {
			return err
		}
		if !r.IsActive {
			continue
		}

		for j := 0; j < i; j++ {
			o := &rules[j]
			if o.IsActive && strings.EqualFold(o.AreaCode, r.AreaCode) && o.Effective.Overlaps(r.Effective) {
				return domain.NewIntegrityError(domain.EntityAreaRule,
					"active rules #%d and #%d of area %q overlap", o.ID, r.ID, r.AreaCode)
			}
		}
	}
	return nil
}

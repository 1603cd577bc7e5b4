package compare

import (
	"github.com/dmarchal/game-price-comparator/internal/models"
)

// Savings derives the absolute and percentage saving of a marketplace
// quote against a reference price. The result is fully absent when
// either amount is absent or the reference is exactly zero, which
// guards the division. No rounding happens here; presentation rounding
// belongs to the report layer.
func Savings(reference, quote *float64) models.SavingsResult {
	if reference == nil || quote == nil || *reference == 0 {
		return models.SavingsResult{}
	}

	absolute := *reference - *quote
	percent := 100 * absolute / *reference

	return models.SavingsResult{
		Absolute: &absolute,
		Percent:  &percent,
	}
}

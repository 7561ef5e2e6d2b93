package service

import (
	"cmp"
	"slices"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

// Rank orders offers by ascending annual rate and truncates to limit when
// limit > 0. Offers with equal rates keep their input order. The input slice
// is not modified.
func Rank(offers []model.LenderOffer, limit int) []model.LenderOffer {
	ranked := slices.Clone(offers)
	slices.SortStableFunc(ranked, func(a, b model.LenderOffer) int {
		return cmp.Compare(a.AnnualRatePercent(), b.AnnualRatePercent())
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

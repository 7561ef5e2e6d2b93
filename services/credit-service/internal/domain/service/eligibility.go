package service

import (
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

// FilterEligible keeps the offers that are active and whose term range covers
// termMonths. The input slice is not modified. An empty result is a normal
// outcome, not an error.
func FilterEligible(offers []model.LenderOffer, termMonths int) []model.LenderOffer {
	eligible := make([]model.LenderOffer, 0, len(offers))
	for _, o := range offers {
		if o.EligibleFor(termMonths) {
			eligible = append(eligible, o)
		}
	}
	return eligible
}

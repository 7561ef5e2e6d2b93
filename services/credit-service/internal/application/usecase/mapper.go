package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/money"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

// cents rounds a core float figure to a peso amount with two decimals.
func cents(v float64) decimal.Decimal {
	return money.NewFromFloat(v, money.MXN).Round(2).Amount()
}

func toLenderResponse(l model.LenderOffer) dto.LenderResponse {
	return dto.LenderResponse{
		ID:        l.ID(),
		Name:      l.Name(),
		Active:    l.IsActive(),
		Version:   l.Version(),
		UpdatedAt: l.UpdatedAt(),
		LenderTerms: dto.LenderTerms{
			AnnualRatePercent:  l.AnnualRatePercent(),
			MinTermMonths:      l.MinTermMonths(),
			MaxTermMonths:      l.MaxTermMonths(),
			ProcessingTimeDays: l.ProcessingTimeDays(),
		},
	}
}

func toLenderResponses(lenders []model.LenderOffer) []dto.LenderResponse {
	out := make([]dto.LenderResponse, 0, len(lenders))
	for _, l := range lenders {
		out = append(out, toLenderResponse(l))
	}
	return out
}

func toDomainTerms(t dto.LenderTerms) model.LenderTerms {
	return model.LenderTerms{
		AnnualRatePercent:  t.AnnualRatePercent,
		MinTermMonths:      t.MinTermMonths,
		MaxTermMonths:      t.MaxTermMonths,
		ProcessingTimeDays: t.ProcessingTimeDays,
	}
}

// toResultResponse rounds figures to cents. Ineligible results never carry
// payment figures or a schedule.
func toResultResponse(res model.SimulationResult, schedule []model.AmortizationEntry) dto.SimulationResultResponse {
	out := dto.SimulationResultResponse{
		Lender:         toLenderResponse(res.Lender),
		FinancedAmount: cents(res.FinancedAmount),
		TermMonths:     res.TermMonths,
		Eligible:       res.Eligible,
	}
	if !res.Eligible || res.Payment == nil {
		return out
	}
	out.Payment = &dto.PaymentFigures{
		MonthlyPayment: cents(res.Payment.MonthlyPayment),
		TotalPayment:   cents(res.Payment.TotalPayment),
		TotalInterest:  cents(res.Payment.TotalInterest),
	}
	if len(schedule) > 0 {
		out.Schedule = make([]dto.AmortizationEntryResponse, 0, len(schedule))
		for _, e := range schedule {
			out.Schedule = append(out.Schedule, dto.AmortizationEntryResponse{
				Period:           e.Period,
				DueDate:          e.DueDate,
				Principal:        e.Principal,
				Interest:         e.Interest,
				Total:            e.Total,
				RemainingBalance: e.RemainingBalance,
			})
		}
	}
	return out
}

func toApplicationResponse(app model.CreditApplication) dto.CreditApplicationResponse {
	sim := app.Simulation()
	return dto.CreditApplicationResponse{
		ID:                app.ID(),
		ApplicantID:       app.ApplicantID(),
		ListingID:         app.ListingID(),
		LenderID:          sim.LenderID,
		LenderName:        sim.LenderName,
		AnnualRatePercent: sim.AnnualRatePercent,
		VehiclePrice:      sim.VehiclePrice,
		DownPayment:       sim.DownPayment,
		FinancedAmount:    sim.FinancedAmount,
		TermMonths:        sim.TermMonths,
		MonthlyPayment:    sim.MonthlyPayment,
		TotalPayment:      sim.TotalPayment,
		TotalInterest:     sim.TotalInterest,
		Status:            app.Status().String(),
		ReviewerID:        app.ReviewerID(),
		DecisionReason:    app.DecisionReason(),
		CreatedAt:         app.CreatedAt(),
		UpdatedAt:         app.UpdatedAt(),
	}
}

func toApplicationResponses(apps []model.CreditApplication) dto.ListApplicationsResponse {
	out := dto.ListApplicationsResponse{Applications: make([]dto.CreditApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		out.Applications = append(out.Applications, toApplicationResponse(a))
	}
	return out
}

func nowUTC() time.Time { return time.Now().UTC() }

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/money"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
)

// maxBodyBytes bounds simulation request bodies.
const maxBodyBytes = 64 << 10

// Simulator is satisfied by usecase.SimulateCreditUseCase.
type Simulator interface {
	Simulate(ctx context.Context, req dto.SimulationRequest) (dto.SimulationResponse, error)
	FindBestMatches(ctx context.Context, req dto.SimulationRequest) (dto.SimulationResponse, error)
}

// SimulationHandler serves the public simulation endpoints.
type SimulationHandler struct {
	simulator Simulator
	logger    *slog.Logger
}

func NewSimulationHandler(simulator Simulator, logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{simulator: simulator, logger: logger}
}

func (h *SimulationHandler) simulate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.simulator.Simulate)
}

func (h *SimulationHandler) bestMatches(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.simulator.FindBestMatches)
}

func (h *SimulationHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	run func(context.Context, dto.SimulationRequest) (dto.SimulationResponse, error),
) {
	var req dto.SimulationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body: " + err.Error()})
		return
	}

	resp, err := run(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimulationView(resp))
}

// ---------------------------------------------------------------------------
// Display views: raw figures plus MXN strings for the marketplace UI
// ---------------------------------------------------------------------------

type paymentView struct {
	dto.PaymentFigures
	MonthlyPaymentDisplay string `json:"monthly_payment_display"`
	TotalPaymentDisplay   string `json:"total_payment_display"`
	TotalInterestDisplay  string `json:"total_interest_display"`
}

type resultView struct {
	LenderID           string                          `json:"lender_id"`
	LenderName         string                          `json:"lender_name"`
	AnnualRatePercent  float64                         `json:"annual_rate_percent"`
	AnnualRateDisplay  string                          `json:"annual_rate_display"`
	ProcessingTimeDays int                             `json:"processing_time_days"`
	MinTermMonths      int                             `json:"min_term_months"`
	MaxTermMonths      int                             `json:"max_term_months"`
	Eligible           bool                            `json:"eligible"`
	Payment            *paymentView                    `json:"payment,omitempty"`
	Schedule           []dto.AmortizationEntryResponse `json:"schedule,omitempty"`
}

type simulationView struct {
	ListingID             string          `json:"listing_id,omitempty"`
	Currency              string          `json:"currency"`
	VehiclePrice          decimal.Decimal `json:"vehicle_price"`
	VehiclePriceDisplay   string          `json:"vehicle_price_display"`
	DownPayment           decimal.Decimal `json:"down_payment"`
	DownPaymentDisplay    string          `json:"down_payment_display"`
	FinancedAmount        decimal.Decimal `json:"financed_amount"`
	FinancedAmountDisplay string          `json:"financed_amount_display"`
	TermMonths            int             `json:"term_months"`
	Results               []resultView    `json:"results"`
}

func toSimulationView(resp dto.SimulationResponse) simulationView {
	view := simulationView{
		ListingID:             resp.ListingID,
		Currency:              money.MXN.Code(),
		VehiclePrice:          resp.VehiclePrice,
		VehiclePriceDisplay:   money.Format(money.New(resp.VehiclePrice, money.MXN)),
		DownPayment:           resp.DownPayment,
		DownPaymentDisplay:    money.Format(money.New(resp.DownPayment, money.MXN)),
		FinancedAmount:        resp.FinancedAmount,
		FinancedAmountDisplay: money.Format(money.New(resp.FinancedAmount, money.MXN)),
		TermMonths:            resp.TermMonths,
		Results:               make([]resultView, 0, len(resp.Results)),
	}
	for _, res := range resp.Results {
		rv := resultView{
			LenderID:           res.Lender.ID,
			LenderName:         res.Lender.Name,
			AnnualRatePercent:  res.Lender.AnnualRatePercent,
			AnnualRateDisplay:  money.FormatPercent(res.Lender.AnnualRatePercent),
			ProcessingTimeDays: res.Lender.ProcessingTimeDays,
			MinTermMonths:      res.Lender.MinTermMonths,
			MaxTermMonths:      res.Lender.MaxTermMonths,
			Eligible:           res.Eligible,
			Schedule:           res.Schedule,
		}
		if res.Payment != nil {
			rv.Payment = &paymentView{
				PaymentFigures:        *res.Payment,
				MonthlyPaymentDisplay: money.FormatAmount(res.Payment.MonthlyPayment),
				TotalPaymentDisplay:   money.FormatAmount(res.Payment.TotalPayment),
				TotalInterestDisplay:  money.FormatAmount(res.Payment.TotalInterest),
			}
		}
		view.Results = append(view.Results, rv)
	}
	return view
}

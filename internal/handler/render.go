package handler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
)

const summaryRule = "============================================="

// RenderSummary prints the trip header above a breakdown.
func RenderSummary(w io.Writer, q *application.QuoteDTO) {
	peak := "Off-peak"
	if q.IsPeak {
		peak = "Peak"
	}
	fmt.Fprintf(w, "\n=== Summary =================================\n")
	fmt.Fprintf(w, "Vehicle: %s | %s | Distance: %.2f km", q.Vehicle.Name, peak, q.DistanceKm)
	if q.Vehicle.Rates.BillsTime() {
		fmt.Fprintf(w, " | Time: %.2f min", q.DurationMin)
	}
	fmt.Fprintf(w, "\n%s\n", summaryRule)
}

// RenderBreakdown prints the itemized fare in RM.
func RenderBreakdown(w io.Writer, q *application.QuoteDTO) {
	b := q.Breakdown

	fmt.Fprintln(w, "\n--- Fare Breakdown (RM) ---")
	fmt.Fprintf(w, "Base fare               : %s\n", b.Base.StringFixed(2))
	fmt.Fprintf(w, "Booking fee             : %s\n", b.BookingFee.StringFixed(2))
	fmt.Fprintf(w, "Distance cost (off-peak): %s\n", b.DistanceCostOffPeak.StringFixed(2))
	if b.PeakApplied() {
		fmt.Fprintf(w, "Peak multiplier x%.2f applied to distance\n", b.PeakMultiplier)
	} else {
		fmt.Fprintln(w, "Peak multiplier         : x1.00 (off-peak)")
	}
	fmt.Fprintf(w, "Distance cost (final)   : %s\n", b.DistanceCostFinal.StringFixed(2))
	if b.TimeCost.IsPositive() {
		fmt.Fprintf(w, "Time cost               : %s\n", b.TimeCost.StringFixed(2))
	}
	fmt.Fprintf(w, "Subtotal                : %s\n", b.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Promo code used         : %s", b.PromoCode)
	if b.PromoCode != fare.NoPromoCode {
		fmt.Fprintf(w, " (discount %s)", b.DiscountApplied.StringFixed(2))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total before min fare   : %s\n", b.TotalBeforeMinimum.StringFixed(2))
	if b.MinimumApplied {
		fmt.Fprintln(w, "Minimum fare enforced   : yes")
	} else {
		fmt.Fprintln(w, "Minimum fare enforced   : no")
	}
	fmt.Fprintln(w, "-----------------------------")
	fmt.Fprintf(w, "Total payable           : %s\n\n", b.TotalPayable.StringFixed(2))
}

type breakdownJSON struct {
	Base                string  `json:"base"`
	BookingFee          string  `json:"booking_fee"`
	DistanceCostOffPeak string  `json:"distance_cost_off_peak"`
	TimeCost            string  `json:"time_cost"`
	PeakMultiplier      float64 `json:"peak_multiplier"`
	DistanceCostFinal   string  `json:"distance_cost_final"`
	Subtotal            string  `json:"subtotal"`
	PromoCode           string  `json:"promo_code"`
	DiscountApplied     string  `json:"discount_applied"`
	TotalBeforeMinimum  string  `json:"total_before_minimum"`
	TotalPayable        string  `json:"total_payable"`
	MinimumApplied      bool    `json:"minimum_applied"`
}

type quoteJSON struct {
	QuoteID     string        `json:"quote_id"`
	VehicleID   string        `json:"vehicle_id"`
	VehicleName string        `json:"vehicle_name"`
	DistanceKm  float64       `json:"distance_km"`
	DurationMin float64       `json:"duration_min"`
	IsPeak      bool          `json:"is_peak"`
	Currency    string        `json:"currency"`
	Breakdown   breakdownJSON `json:"breakdown"`
}

// RenderJSON writes the quote as indented JSON with amounts as fixed
// 2-place strings.
func RenderJSON(w io.Writer, q *application.QuoteDTO) error {
	b := q.Breakdown
	out := quoteJSON{
		QuoteID:     q.QuoteID.String(),
		VehicleID:   q.Vehicle.ID,
		VehicleName: q.Vehicle.Name,
		DistanceKm:  q.DistanceKm,
		DurationMin: q.DurationMin,
		IsPeak:      q.IsPeak,
		Currency:    "MYR",
		Breakdown: breakdownJSON{
			Base:                b.Base.StringFixed(2),
			BookingFee:          b.BookingFee.StringFixed(2),
			DistanceCostOffPeak: b.DistanceCostOffPeak.StringFixed(2),
			TimeCost:            b.TimeCost.StringFixed(2),
			PeakMultiplier:      b.PeakMultiplier,
			DistanceCostFinal:   b.DistanceCostFinal.StringFixed(2),
			Subtotal:            b.Subtotal.StringFixed(2),
			PromoCode:           b.PromoCode,
			DiscountApplied:     b.DiscountApplied.StringFixed(2),
			TotalBeforeMinimum:  b.TotalBeforeMinimum.StringFixed(2),
			TotalPayable:        b.TotalPayable.StringFixed(2),
			MinimumApplied:      b.MinimumApplied,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	return nil
}

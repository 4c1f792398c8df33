package fare

import (
	"math"

	"github.com/shopspring/decimal"
)

// FareCalculator defines the interface for pricing a single trip.
type FareCalculator interface {
	// Calculate returns the itemized breakdown for the trip on the given vehicle class.
	Calculate(trip TripParams, vehicle VehicleClass) FareBreakdown
}

// TripParams holds the inputs for fare calculation. The calculator performs
// no range checks; callers must supply finite, non-negative values.
type TripParams struct {
	DistanceKm  float64
	DurationMin float64
	IsPeak      bool
	PromoCode   string
}

// FareBreakdown is the itemized result of one fare calculation. Currency
// fields are rounded to sen (2 places, half away from zero).
type FareBreakdown struct {
	Base                decimal.Decimal
	BookingFee          decimal.Decimal
	DistanceCostOffPeak decimal.Decimal
	TimeCost            decimal.Decimal
	PeakMultiplier      float64
	DistanceCostFinal   decimal.Decimal
	Subtotal            decimal.Decimal
	PromoCode           string
	DiscountApplied     decimal.Decimal
	TotalBeforeMinimum  decimal.Decimal
	TotalPayable        decimal.Decimal
	// MinimumApplied reports whether the unrounded total fell below the
	// minimum fare and was raised to it.
	MinimumApplied bool
}

// PeakApplied returns true if a surcharge multiplier above 1 was used.
func (b FareBreakdown) PeakApplied() bool {
	return b.PeakMultiplier > 1.0
}

// StandardFareCalculator prices trips against a fixed Catalog.
type StandardFareCalculator struct {
	catalog *Catalog
}

// NewStandardFareCalculator creates a new StandardFareCalculator.
func NewStandardFareCalculator(catalog *Catalog) *StandardFareCalculator {
	return &StandardFareCalculator{catalog: catalog}
}

// Calculate computes the breakdown using the catalog's peak multiplier,
// minimum fare and promo rules.
func (s *StandardFareCalculator) Calculate(trip TripParams, vehicle VehicleClass) FareBreakdown {
	return ComputeFare(trip, vehicle.Rates, s.catalog.peakMultiplier, s.catalog.minimumFare, s.catalog.promos)
}

// ComputeFare is the pure fare function.
//
// Pricing formula:
//   - Distance: distance * per-km rate, times the peak multiplier when peak
//   - Time: duration * per-minute rate
//   - Subtotal: base + booking fee + distance + time
//   - Discount: subtotal * promo percentage, capped at the promo cap
//   - Total: subtotal - discount, floored at the minimum fare
//
// All arithmetic runs at full float64 precision and every field is rounded
// independently afterwards, so TotalPayable need not equal the rounded
// Subtotal minus the rounded DiscountApplied.
func ComputeFare(trip TripParams, rates RateCard, peakMultiplier, minimumFare float64, promos PromoCatalog) FareBreakdown {
	distanceOffPeak := trip.DistanceKm * rates.PerKm
	timeCost := trip.DurationMin * rates.PerMin

	multiplier := 1.0
	if trip.IsPeak {
		multiplier = peakMultiplier
	}
	distanceFinal := distanceOffPeak * multiplier
	subtotal := rates.Base + rates.BookingFee + distanceFinal + timeCost

	code, promo := promos.Lookup(trip.PromoCode)
	discount := subtotal * promo.Percentage
	if discount > promo.Cap {
		discount = promo.Cap
	}

	totalBeforeMin := subtotal - discount
	totalPayable := totalBeforeMin
	minimumApplied := totalPayable < minimumFare
	if minimumApplied {
		totalPayable = minimumFare
	}

	return FareBreakdown{
		Base:                RoundCurrency(rates.Base),
		BookingFee:          RoundCurrency(rates.BookingFee),
		DistanceCostOffPeak: RoundCurrency(distanceOffPeak),
		TimeCost:            RoundCurrency(timeCost),
		PeakMultiplier:      multiplier,
		DistanceCostFinal:   RoundCurrency(distanceFinal),
		Subtotal:            RoundCurrency(subtotal),
		PromoCode:           code,
		DiscountApplied:     RoundCurrency(discount),
		TotalBeforeMinimum:  RoundCurrency(totalBeforeMin),
		TotalPayable:        RoundCurrency(totalPayable),
		MinimumApplied:      minimumApplied,
	}
}

// RoundCurrency scales the amount to sen, rounds half away from zero and
// scales back. Rounding acts on the scaled binary value, so 1.725 gives 1.73
// while 9.995 (999.4999... sen) gives 9.99.
func RoundCurrency(v float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Round(v*100) / 100)
}

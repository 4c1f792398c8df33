package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTrip is returned when trip input falls outside the accepted bounds.
var ErrInvalidTrip = errors.New("invalid trip")

// TripLimits are the upper bounds accepted for trip distance and duration.
type TripLimits struct {
	MaxDistanceKm  float64
	MaxDurationMin float64
}

// DefaultTripLimits returns the standard sanity bounds (200 km, 1000 min).
func DefaultTripLimits() TripLimits {
	return TripLimits{MaxDistanceKm: 200, MaxDurationMin: 1000}
}

// QuoteRequest holds the data needed to price one trip.
type QuoteRequest struct {
	VehicleID   string
	DistanceKm  float64
	DurationMin float64
	IsPeak      bool
	PromoCode   string
}

// QuoteDTO is the response representation of a priced trip.
type QuoteDTO struct {
	QuoteID     uuid.UUID
	Vehicle     fare.VehicleClass
	DistanceKm  float64
	DurationMin float64
	IsPeak      bool
	Breakdown   fare.FareBreakdown
}

// FareService is the application service orchestrating fare quotes.
type FareService struct {
	catalog    *fare.Catalog
	calculator fare.FareCalculator
	limits     TripLimits
	logger     *zap.Logger
}

// NewFareService creates a new FareService.
func NewFareService(
	catalog *fare.Catalog,
	calculator fare.FareCalculator,
	limits TripLimits,
	logger *zap.Logger,
) *FareService {
	return &FareService{
		catalog:    catalog,
		calculator: calculator,
		limits:     limits,
		logger:     logger,
	}
}

// Catalog returns the pricing catalog the service quotes against.
func (s *FareService) Catalog() *fare.Catalog {
	return s.catalog
}

// Limits returns the accepted trip bounds.
func (s *FareService) Limits() TripLimits {
	return s.limits
}

// Quote validates the request and prices the trip.
func (s *FareService) Quote(ctx context.Context, req QuoteRequest) (*QuoteDTO, error) {
	vehicle, err := s.catalog.Vehicle(req.VehicleID)
	if err != nil {
		return nil, err
	}

	// Duration is ignored for classes without time billing.
	if !vehicle.Rates.BillsTime() {
		req.DurationMin = 0
	}

	if err := s.validate(vehicle, req); err != nil {
		s.logger.Debug("rejected quote request",
			zap.String("vehicle_id", vehicle.ID),
			zap.Error(err),
		)
		return nil, err
	}

	breakdown := s.calculator.Calculate(fare.TripParams{
		DistanceKm:  req.DistanceKm,
		DurationMin: req.DurationMin,
		IsPeak:      req.IsPeak,
		PromoCode:   req.PromoCode,
	}, vehicle)

	quote := &QuoteDTO{
		QuoteID:     uuid.New(),
		Vehicle:     vehicle,
		DistanceKm:  req.DistanceKm,
		DurationMin: req.DurationMin,
		IsPeak:      req.IsPeak,
		Breakdown:   breakdown,
	}

	s.logger.Info("fare quoted",
		zap.String("quote_id", quote.QuoteID.String()),
		zap.String("vehicle_id", vehicle.ID),
		zap.Float64("distance_km", req.DistanceKm),
		zap.Float64("duration_min", req.DurationMin),
		zap.Bool("peak", req.IsPeak),
		zap.String("promo_code", breakdown.PromoCode),
		zap.String("total_payable", breakdown.TotalPayable.StringFixed(2)),
	)

	return quote, nil
}

// ValidateDistance checks a distance against the configured bounds.
func (s *FareService) ValidateDistance(km float64) error {
	if !isFinite(km) || km <= 0 || km > s.limits.MaxDistanceKm {
		return fmt.Errorf("%w: distance must be a positive number (<= %g)", ErrInvalidTrip, s.limits.MaxDistanceKm)
	}
	return nil
}

// ValidateDuration checks a duration against the configured bounds.
func (s *FareService) ValidateDuration(minutes float64) error {
	if !isFinite(minutes) || minutes <= 0 || minutes > s.limits.MaxDurationMin {
		return fmt.Errorf("%w: duration must be a positive number (<= %g)", ErrInvalidTrip, s.limits.MaxDurationMin)
	}
	return nil
}

func (s *FareService) validate(vehicle fare.VehicleClass, req QuoteRequest) error {
	if err := s.ValidateDistance(req.DistanceKm); err != nil {
		return err
	}
	if vehicle.Rates.BillsTime() {
		return s.ValidateDuration(req.DurationMin)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

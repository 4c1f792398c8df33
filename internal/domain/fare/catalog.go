package fare

import (
	"fmt"
	"strings"
)

const (
	// DefaultPeakMultiplier is the 50% peak surcharge applied to the distance cost.
	DefaultPeakMultiplier = 1.50
	// DefaultMinimumFare is the lowest payable fare in RM.
	DefaultMinimumFare = 5.00
)

// Catalog is the read-only pricing configuration: vehicle classes in menu
// order, promo rules and the global peak/minimum constants.
type Catalog struct {
	vehicles       []VehicleClass
	promos         PromoCatalog
	peakMultiplier float64
	minimumFare    float64
}

// NewCatalog validates and builds a Catalog. The inputs are copied, so later
// changes to the caller's slices or maps do not leak in.
func NewCatalog(vehicles []VehicleClass, promos map[string]PromoRule, peakMultiplier, minimumFare float64) (*Catalog, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("%w: no vehicle classes", ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(vehicles))
	vs := make([]VehicleClass, 0, len(vehicles))
	for _, v := range vehicles {
		id := strings.ToLower(strings.TrimSpace(v.ID))
		if id == "" {
			return nil, fmt.Errorf("%w: vehicle class without id", ErrInvalidCatalog)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate vehicle class %q", ErrInvalidCatalog, id)
		}
		if err := v.Rates.validate(); err != nil {
			return nil, fmt.Errorf("%w: vehicle class %q: %v", ErrInvalidCatalog, id, err)
		}
		seen[id] = true
		v.ID = id
		if v.Name == "" {
			v.Name = id
		}
		vs = append(vs, v)
	}

	pc := make(PromoCatalog, len(promos))
	for raw, rule := range promos {
		code := NormalizePromoCode(raw)
		if code == "" {
			return nil, fmt.Errorf("%w: blank promo code", ErrInvalidCatalog)
		}
		if _, dup := pc[code]; dup {
			return nil, fmt.Errorf("%w: duplicate promo code %q", ErrInvalidCatalog, code)
		}
		if err := rule.validate(); err != nil {
			return nil, fmt.Errorf("%w: promo %q: %v", ErrInvalidCatalog, code, err)
		}
		pc[code] = rule
	}
	none, ok := pc[NoPromoCode]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s promo rule", ErrInvalidCatalog, NoPromoCode)
	}
	if none != (PromoRule{}) {
		return nil, fmt.Errorf("%w: %s promo rule must be zero", ErrInvalidCatalog, NoPromoCode)
	}

	if peakMultiplier < 1 {
		return nil, fmt.Errorf("%w: peak multiplier %v below 1", ErrInvalidCatalog, peakMultiplier)
	}
	if minimumFare < 0 {
		return nil, fmt.Errorf("%w: minimum fare cannot be negative", ErrInvalidCatalog)
	}

	return &Catalog{
		vehicles:       vs,
		promos:         pc,
		peakMultiplier: peakMultiplier,
		minimumFare:    minimumFare,
	}, nil
}

// DefaultCatalog returns the built-in Malaysian rate and promo tables.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]VehicleClass{
			{ID: "economy", Name: "GrabCar Economy", Rates: RateCard{Base: 2.50, PerKm: 1.20, PerMin: 0.20, BookingFee: 1.00}},
			{ID: "premium", Name: "GrabCar Premium", Rates: RateCard{Base: 4.00, PerKm: 1.60, PerMin: 0.30, BookingFee: 1.00}},
			{ID: "bike", Name: "GrabBike", Rates: RateCard{Base: 1.50, PerKm: 0.50, PerMin: 0.00, BookingFee: 0.50}},
		},
		map[string]PromoRule{
			NoPromoCode: {Percentage: 0.00, Cap: 0.00},
			"GRAB10":    {Percentage: 0.10, Cap: 3.00}, // 10% off up to RM3
			"STUDENT15": {Percentage: 0.15, Cap: 5.00}, // 15% off up to RM5
			"SUPER20":   {Percentage: 0.20, Cap: 8.00}, // 20% off up to RM8
		},
		DefaultPeakMultiplier,
		DefaultMinimumFare,
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Vehicles returns the vehicle classes in menu order.
func (c *Catalog) Vehicles() []VehicleClass {
	out := make([]VehicleClass, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Vehicle looks up a vehicle class by id, case-insensitively.
func (c *Catalog) Vehicle(id string) (VehicleClass, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, v := range c.vehicles {
		if v.ID == key {
			return v, nil
		}
	}
	return VehicleClass{}, fmt.Errorf("%w: %s", ErrUnknownVehicle, id)
}

// VehicleAt returns the vehicle class at a 1-based menu position.
func (c *Catalog) VehicleAt(choice int) (VehicleClass, error) {
	if choice < 1 || choice > len(c.vehicles) {
		return VehicleClass{}, fmt.Errorf("%w: menu choice %d", ErrUnknownVehicle, choice)
	}
	return c.vehicles[choice-1], nil
}

// Promos returns a copy of the promo catalog.
func (c *Catalog) Promos() PromoCatalog {
	out := make(PromoCatalog, len(c.promos))
	for code, rule := range c.promos {
		out[code] = rule
	}
	return out
}

// PromoCodes lists the recognized codes, NONE first.
func (c *Catalog) PromoCodes() []string {
	return c.promos.Codes()
}

// PeakMultiplier returns the factor applied to distance cost at peak hours.
func (c *Catalog) PeakMultiplier() float64 { return c.peakMultiplier }

// MinimumFare returns the floor applied to the discounted total.
func (c *Catalog) MinimumFare() float64 { return c.minimumFare }

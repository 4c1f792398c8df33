package fare

import "fmt"

// RateCard is an immutable value object holding the pricing of one vehicle class (RM).
type RateCard struct {
	Base       float64 `json:"base"`
	PerKm      float64 `json:"per_km"`
	PerMin     float64 `json:"per_min"` // 0 when the class has no time billing
	BookingFee float64 `json:"booking_fee"`
}

// BillsTime returns true if the rate card charges for trip duration.
func (r RateCard) BillsTime() bool {
	return r.PerMin > 0
}

func (r RateCard) validate() error {
	if r.Base < 0 || r.PerKm < 0 || r.PerMin < 0 || r.BookingFee < 0 {
		return fmt.Errorf("rates cannot be negative")
	}
	return nil
}

// VehicleClass is a selectable vehicle type with its display name and rate card.
type VehicleClass struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Rates RateCard `json:"rates"`
}

package config

import (
	"fmt"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/spf13/viper"
)

// catalogFile is the on-disk layout of a pricing catalog. Lists are used
// instead of maps because viper lowercases map keys.
type catalogFile struct {
	PeakMultiplier float64        `mapstructure:"peak_multiplier"`
	MinimumFare    float64        `mapstructure:"minimum_fare"`
	Vehicles       []vehicleEntry `mapstructure:"vehicles"`
	Promos         []promoEntry   `mapstructure:"promos"`
}

type vehicleEntry struct {
	ID         string  `mapstructure:"id"`
	Name       string  `mapstructure:"name"`
	Base       float64 `mapstructure:"base"`
	PerKm      float64 `mapstructure:"per_km"`
	PerMin     float64 `mapstructure:"per_min"`
	BookingFee float64 `mapstructure:"booking_fee"`
}

type promoEntry struct {
	Code       string  `mapstructure:"code"`
	Percentage float64 `mapstructure:"percentage"`
	Cap        float64 `mapstructure:"cap"`
}

// LoadCatalog reads a YAML/JSON/TOML catalog file and validates it. A NONE
// promo is added when the file omits it.
func LoadCatalog(path string) (*fare.Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("peak_multiplier", fare.DefaultPeakMultiplier)
	v.SetDefault("minimum_fare", fare.DefaultMinimumFare)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}

	vehicles := make([]fare.VehicleClass, 0, len(file.Vehicles))
	for _, e := range file.Vehicles {
		vehicles = append(vehicles, fare.VehicleClass{
			ID:   e.ID,
			Name: e.Name,
			Rates: fare.RateCard{
				Base:       e.Base,
				PerKm:      e.PerKm,
				PerMin:     e.PerMin,
				BookingFee: e.BookingFee,
			},
		})
	}

	promos := make(map[string]fare.PromoRule, len(file.Promos)+1)
	for _, e := range file.Promos {
		code := fare.NormalizePromoCode(e.Code)
		if _, dup := promos[code]; dup {
			return nil, fmt.Errorf("%w: duplicate promo code %q", fare.ErrInvalidCatalog, code)
		}
		promos[code] = fare.PromoRule{Percentage: e.Percentage, Cap: e.Cap}
	}
	if _, ok := promos[fare.NoPromoCode]; !ok {
		promos[fare.NoPromoCode] = fare.PromoRule{}
	}

	return fare.NewCatalog(vehicles, promos, file.PeakMultiplier, file.MinimumFare)
}

package cli

import (
	"fmt"
	"io"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/spf13/pflag"
)

// QuoteFlags are the one-shot trip parameters of quote mode.
type QuoteFlags struct {
	Vehicle  string
	Distance float64
	Duration float64
	Peak     bool
	Promo    string
	JSON     bool
}

// Request converts the flags into a quote request.
func (f QuoteFlags) Request() application.QuoteRequest {
	return application.QuoteRequest{
		VehicleID:   f.Vehicle,
		DistanceKm:  f.Distance,
		DurationMin: f.Duration,
		IsPeak:      f.Peak,
		PromoCode:   f.Promo,
	}
}

// NewFlagSet builds the flag set for a mode. Global flags (--catalog,
// --log-level) are registered for every mode; quote flags are filled into
// qf when mode is quote. Usage and parse errors go to out.
func NewFlagSet(mode string, qf *QuoteFlags, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(mode, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.String("catalog", "", "Path to a YAML/JSON pricing catalog (default: built-in rates)")
	fs.String("log-level", "warn", "Log level: debug, info, warn, error")

	if mode == ModeQuote && qf != nil {
		fs.StringVar(&qf.Vehicle, "vehicle", "", "Vehicle class id, e.g. economy, premium, bike")
		fs.Float64Var(&qf.Distance, "distance", 0, "Trip distance in km")
		fs.Float64Var(&qf.Duration, "duration", 0, "Estimated trip time in minutes (time-billed classes)")
		fs.BoolVar(&qf.Peak, "peak", false, "Apply the peak-hour multiplier")
		fs.StringVar(&qf.Promo, "promo", "NONE", "Promo code")
		fs.BoolVar(&qf.JSON, "json", false, "Print the breakdown as JSON")
	}

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: farecalc --mode=%s [flags]\n", mode)
		fs.PrintDefaults()
	}
	return fs
}

// Validate checks that the required quote flags are present.
func (f QuoteFlags) Validate() error {
	if f.Vehicle == "" {
		return fmt.Errorf("--vehicle is required")
	}
	if f.Distance <= 0 {
		return fmt.Errorf("--distance must be > 0")
	}
	return nil
}

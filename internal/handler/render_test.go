package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func quoteFor(t *testing.T, req application.QuoteRequest) *application.QuoteDTO {
	t.Helper()
	catalog := fare.DefaultCatalog()
	svc := application.NewFareService(catalog, fare.NewStandardFareCalculator(catalog), application.DefaultTripLimits(), zap.NewNop())
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	return q
}

func TestRenderBreakdown_LabelsAligned(t *testing.T) {
	q := quoteFor(t, application.QuoteRequest{VehicleID: "economy", DistanceKm: 10, DurationMin: 15, PromoCode: "NONE"})

	var buf bytes.Buffer
	RenderBreakdown(&buf, q)

	for _, line := range strings.Split(buf.String(), "\n") {
		if idx := strings.Index(line, ":"); idx >= 0 {
			assert.Equal(t, 24, idx, "line %q", line)
		}
	}
	assert.Contains(t, buf.String(), "Time cost               : 3.00\n")
	assert.Contains(t, buf.String(), "Minimum fare enforced   : no\n")
}

func TestRenderJSON(t *testing.T) {
	q := quoteFor(t, application.QuoteRequest{VehicleID: "economy", DistanceKm: 10, DurationMin: 15, IsPeak: true, PromoCode: "grab10"})

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, q))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, q.QuoteID.String(), got["quote_id"])
	assert.Equal(t, "economy", got["vehicle_id"])
	assert.Equal(t, "MYR", got["currency"])

	breakdown, ok := got["breakdown"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "18.00", breakdown["distance_cost_final"])
	assert.Equal(t, "24.50", breakdown["subtotal"])
	assert.Equal(t, "GRAB10", breakdown["promo_code"])
	assert.Equal(t, "2.45", breakdown["discount_applied"])
	assert.Equal(t, "22.05", breakdown["total_payable"])
	assert.Equal(t, 1.5, breakdown["peak_multiplier"])
}

// 8.49 km on GrabBike with SUPER20 leaves 4.996 before the floor, which
// displays as 5.00 yet still triggers the minimum fare.
func TestRenderBreakdown_MinimumFareJustBelowFloor(t *testing.T) {
	q := quoteFor(t, application.QuoteRequest{VehicleID: "bike", DistanceKm: 8.49, PromoCode: "SUPER20"})

	var buf bytes.Buffer
	RenderBreakdown(&buf, q)

	assert.Contains(t, buf.String(), "Total before min fare   : 5.00\n")
	assert.Contains(t, buf.String(), "Minimum fare enforced   : yes\n")
	assert.Contains(t, buf.String(), "Total payable           : 5.00\n")

	buf.Reset()
	require.NoError(t, RenderJSON(&buf, q))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	breakdown, ok := got["breakdown"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, breakdown["minimum_applied"])
}

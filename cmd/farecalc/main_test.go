package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCapture(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_QuoteText(t *testing.T) {
	code, out, _ := runCapture(t, "", "quote", "--vehicle=economy", "--distance=10", "--duration=15")

	require.Equal(t, 0, code)
	assert.Contains(t, out, "Vehicle: GrabCar Economy | Off-peak | Distance: 10.00 km | Time: 15.00 min")
	assert.Contains(t, out, "Total payable           : 18.50")
}

func TestRun_QuoteJSON(t *testing.T) {
	code, out, _ := runCapture(t, "", "--mode=quote", "--vehicle=bike", "--distance=1", "--promo=super20", "--json")

	require.Equal(t, 0, code)
	var got struct {
		Breakdown map[string]any `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "SUPER20", got.Breakdown["promo_code"])
	assert.Equal(t, "2.00", got.Breakdown["total_before_minimum"])
	assert.Equal(t, "5.00", got.Breakdown["total_payable"])
}

func TestRun_QuoteValidationErrors(t *testing.T) {
	code, _, errOut := runCapture(t, "", "quote", "--distance=10")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "--vehicle is required")

	code, _, errOut = runCapture(t, "", "quote", "--vehicle=economy", "--distance=500", "--duration=10")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid trip")

	code, _, errOut = runCapture(t, "", "quote", "--vehicle=rickshaw", "--distance=5")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown vehicle class")
}

func TestRun_UsageErrors(t *testing.T) {
	code, _, _ := runCapture(t, "", "--mode=server")
	assert.Equal(t, 2, code)

	code, _, _ = runCapture(t, "", "--no-such-flag")
	assert.Equal(t, 2, code)

	code, out, _ := runCapture(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
}

func TestRun_Interactive(t *testing.T) {
	code, out, _ := runCapture(t, "2\n5\n10\n2\nstudent15\n2\n")

	require.Equal(t, 0, code)
	// 4.00 + 1.00 + 5*1.60*1.5 + 10*0.30 = 20.00; 15% = 3.00
	assert.Contains(t, out, "Subtotal                : 20.00")
	assert.Contains(t, out, "Promo code used         : STUDENT15 (discount 3.00)")
	assert.Contains(t, out, "Total payable           : 17.00")
}

func TestRun_InteractiveEndOfInput(t *testing.T) {
	code, out, _ := runCapture(t, "1\n")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Input ended unexpectedly. Exiting.")
}

func TestRun_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
minimum_fare: 10
vehicles:
  - id: tuktuk
    name: Tuk Tuk
    base: 1.00
    per_km: 1.00
`), 0o600))

	code, out, _ := runCapture(t, "", "quote", "--catalog="+path, "--vehicle=tuktuk", "--distance=3")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Total before min fare   : 4.00")
	assert.Contains(t, out, "Total payable           : 10.00")

	code, _, errOut := runCapture(t, "", "quote", "--catalog="+filepath.Join(t.TempDir(), "nope.yaml"), "--vehicle=bike", "--distance=3")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "failed to load pricing catalog")
}

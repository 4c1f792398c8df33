package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/config"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/handler"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// fareStack holds wired-up fare calculator components.
type fareStack struct {
	Config  *config.ServiceConfig
	Catalog *fare.Catalog
	Service *application.FareService
	Logger  *zap.Logger
}

// setupFareStack loads config from the environment and wires the full stack
// the way cmd/farecalc does.
func setupFareStack(t *testing.T) *fareStack {
	t.Helper()
	cfg, err := config.Load(nil)
	require.NoError(t, err, "failed to load config")

	catalog, err := cfg.Catalog()
	require.NoError(t, err, "failed to load catalog")

	logger := zaptest.NewLogger(t)
	svc := application.NewFareService(
		catalog,
		fare.NewStandardFareCalculator(catalog),
		cfg.Limits,
		logger,
	)

	return &fareStack{Config: cfg, Catalog: catalog, Service: svc, Logger: logger}
}

// runConsole feeds the scripted answers to a console session and returns its output.
func runConsole(t *testing.T, stack *fareStack, answers ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(answers, "\n")
	if len(answers) > 0 {
		input += "\n"
	}
	console := handler.NewConsoleHandler(stack.Service, strings.NewReader(input), &out, stack.Logger)
	require.NoError(t, console.Run(context.Background()))
	return out.String()
}

// writeCatalogFile writes a catalog file and points FARECALC_CATALOG_FILE at it.
func writeCatalogFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600), "failed to write catalog")
	t.Setenv("FARECALC_CATALOG_FILE", path)
	return path
}

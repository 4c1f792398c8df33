package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/cli"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/config"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// quick path for global help
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h") {
		cli.PrintUsage(stdout)
		return 0
	}

	// parse mode and collect the remaining args for that mode
	mode, modeArgs, err := cli.ParseMode(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		cli.PrintUsage(stderr)
		return 2
	}

	var qf cli.QuoteFlags
	fs := cli.NewFlagSet(mode, &qf, stderr)
	if err := fs.Parse(modeArgs); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	// Load configuration
	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, cfg.LogLevel, "farecalc")
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Load pricing catalog
	catalog, err := cfg.Catalog()
	if err != nil {
		log.Error("failed to load pricing catalog",
			zap.String("catalog_file", cfg.CatalogFile),
			zap.Error(err),
		)
		fmt.Fprintf(stderr, "failed to load pricing catalog: %v\n", err)
		return 1
	}

	log.Info("starting farecalc",
		zap.String("mode", mode),
		zap.Int("vehicle_classes", len(catalog.Vehicles())),
		zap.Strings("promo_codes", catalog.PromoCodes()),
	)

	// Initialize application service
	fareService := application.NewFareService(
		catalog,
		fare.NewStandardFareCalculator(catalog),
		cfg.Limits,
		log,
	)

	ctx := context.Background()

	switch mode {
	case cli.ModeInteractive:
		console := handler.NewConsoleHandler(fareService, stdin, stdout, log)
		if err := console.Run(ctx); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}

	case cli.ModeQuote:
		if err := qf.Validate(); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			fs.Usage()
			return 2
		}
		quote, err := fareService.Quote(ctx, qf.Request())
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 2
		}
		if qf.JSON {
			if err := handler.RenderJSON(stdout, quote); err != nil {
				log.Error("failed to render quote", zap.Error(err))
				return 1
			}
		} else {
			handler.RenderSummary(stdout, quote)
			handler.RenderBreakdown(stdout, quote)
		}

	default:
		// should not happen because ParseMode validates known modes
		fmt.Fprintln(stderr, "Error: unknown mode")
		return 2
	}

	return 0
}

package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Kilat-Pet-Delivery/service-fare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-fare/internal/domain/fare"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errInputEnded signals end of input at a prompt.
var errInputEnded = errors.New("input ended")

// ConsoleHandler drives the interactive fare calculator over a text stream.
type ConsoleHandler struct {
	service   *application.FareService
	in        *bufio.Scanner
	out       io.Writer
	logger    *zap.Logger
	sessionID uuid.UUID
}

// NewConsoleHandler creates a new ConsoleHandler reading from in and writing to out.
func NewConsoleHandler(service *application.FareService, in io.Reader, out io.Writer, logger *zap.Logger) *ConsoleHandler {
	sessionID := uuid.New()
	return &ConsoleHandler{
		service:   service,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger.With(zap.String("session_id", sessionID.String())),
		sessionID: sessionID,
	}
}

// Run loops over fare calculations until the user declines to continue or
// input ends. End of input is a graceful exit and returns nil.
func (h *ConsoleHandler) Run(ctx context.Context) error {
	h.logger.Info("console session started")

	h.println("Grab Fare Calculator (Enhanced)")
	h.println("Promo codes available: " + strings.Join(h.service.Catalog().PromoCodes(), ", "))

	for {
		if err := ctx.Err(); err != nil {
			h.logger.Info("console session cancelled", zap.Error(err))
			return nil
		}

		again, err := h.calculateOnce(ctx)
		if errors.Is(err, errInputEnded) {
			h.println("Input ended unexpectedly. Exiting.")
			h.logger.Info("console session ended on end of input")
			return nil
		}
		if err != nil {
			h.logger.Error("console session failed", zap.Error(err))
			return err
		}
		if !again {
			break
		}
	}

	h.println("Thank you for using Grab Fare Calculator. Have a nice day!")
	h.logger.Info("console session finished")
	return nil
}

// calculateOnce runs one full prompt cycle and reports whether to loop again.
func (h *ConsoleHandler) calculateOnce(ctx context.Context) (bool, error) {
	catalog := h.service.Catalog()
	vehicles := catalog.Vehicles()
	limits := h.service.Limits()

	h.println("")
	h.println("Select vehicle type:")
	for i, v := range vehicles {
		h.printf("%d) %s\n", i+1, v.Name)
	}

	choice, err := h.readMenuChoice(fmt.Sprintf("Enter choice (1-%d): ", len(vehicles)), 1, len(vehicles))
	if err != nil {
		return false, err
	}
	vehicle, err := catalog.VehicleAt(choice)
	if err != nil {
		return false, err
	}

	h.printf("Selected: %s\n", vehicle.Name)
	h.println(rateSummary(vehicle.Rates))

	distance, err := h.readPositive("Enter trip distance (km): ", limits.MaxDistanceKm, h.service.ValidateDistance)
	if err != nil {
		return false, err
	}

	var duration float64
	if vehicle.Rates.BillsTime() {
		duration, err = h.readPositive("Enter estimated time (minutes): ", limits.MaxDurationMin, h.service.ValidateDuration)
		if err != nil {
			return false, err
		}
	}

	peakChoice, err := h.readMenuChoice("Is this a peak-hour ride? 1) No  2) Yes : ", 1, 2)
	if err != nil {
		return false, err
	}

	promo, err := h.readPromoCode("Enter promo code (or NONE): ")
	if err != nil {
		return false, err
	}

	quote, err := h.service.Quote(ctx, application.QuoteRequest{
		VehicleID:   vehicle.ID,
		DistanceKm:  distance,
		DurationMin: duration,
		IsPeak:      peakChoice == 2,
		PromoCode:   promo,
	})
	if err != nil {
		return false, fmt.Errorf("failed to quote fare: %w", err)
	}

	RenderSummary(h.out, quote)
	RenderBreakdown(h.out, quote)

	again, err := h.readMenuChoice("Would you like to calculate another fare? 1) Yes  2) No : ", 1, 2)
	if err != nil {
		return false, err
	}
	return again == 1, nil
}

// readLine returns the next input line, or errInputEnded at end of input.
func (h *ConsoleHandler) readLine() (string, error) {
	if h.in.Scan() {
		return h.in.Text(), nil
	}
	if err := h.in.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return "", errInputEnded
}

// readMenuChoice prompts until an integer in [lo, hi] is entered.
func (h *ConsoleHandler) readMenuChoice(prompt string, lo, hi int) (int, error) {
	for {
		h.printf("%s", prompt)
		line, err := h.readLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(firstToken(line)); err == nil && n >= lo && n <= hi {
			return n, nil
		}
		h.printf("Invalid choice. Please enter a number between %d and %d.\n", lo, hi)
	}
}

// readPositive prompts until validate accepts the entered number.
func (h *ConsoleHandler) readPositive(prompt string, ceiling float64, validate func(float64) error) (float64, error) {
	for {
		h.printf("%s", prompt)
		line, err := h.readLine()
		if err != nil {
			return 0, err
		}
		v, perr := strconv.ParseFloat(firstToken(line), 64)
		if perr == nil {
			if err := validate(v); err == nil {
				return v, nil
			}
		}
		h.logger.Debug("rejected numeric input", zap.String("input", line))
		h.printf("Invalid input. Please enter a positive number (<= %g).\n", ceiling)
	}
}

// readPromoCode reads a single free-text token. A blank line means NONE.
func (h *ConsoleHandler) readPromoCode(prompt string) (string, error) {
	h.printf("%s", prompt)
	line, err := h.readLine()
	if err != nil {
		return "", err
	}
	code := firstToken(line)
	if code == "" {
		return fare.NoPromoCode, nil
	}
	return code, nil
}

func (h *ConsoleHandler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func (h *ConsoleHandler) println(s string) {
	fmt.Fprintln(h.out, s)
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func rateSummary(r fare.RateCard) string {
	s := fmt.Sprintf("Base fare: RM %.2f, Per km: RM %.2f, Booking fee: RM %.2f", r.Base, r.PerKm, r.BookingFee)
	if r.BillsTime() {
		s += fmt.Sprintf(", Per minute: RM %.2f", r.PerMin)
	}
	return s
}

// SessionID identifies this console session in logs.
func (h *ConsoleHandler) SessionID() uuid.UUID {
	return h.sessionID
}

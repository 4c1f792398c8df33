package fare

import (
	"fmt"
	"sort"
	"strings"
)

// NoPromoCode is the sentinel code that every promo catalog must carry.
const NoPromoCode = "NONE"

// PromoRule is a percentage-off discount capped at an absolute amount.
type PromoRule struct {
	Percentage float64 `json:"percentage"` // fraction in [0,1]
	Cap        float64 `json:"cap"`
}

func (p PromoRule) validate() error {
	if p.Percentage < 0 || p.Percentage > 1 {
		return fmt.Errorf("percentage %v outside [0,1]", p.Percentage)
	}
	if p.Cap < 0 {
		return fmt.Errorf("cap cannot be negative")
	}
	return nil
}

// PromoCatalog maps normalized promo codes to their discount rules.
type PromoCatalog map[string]PromoRule

// NormalizePromoCode trims surrounding whitespace and uppercases the code.
func NormalizePromoCode(raw string) string {
	return strings.ToUpper(strings.Trim(raw, " \t\r\n"))
}

// Lookup resolves a raw promo code. Unrecognized or blank codes degrade to
// the NONE rule rather than failing.
func (c PromoCatalog) Lookup(raw string) (string, PromoRule) {
	code := NormalizePromoCode(raw)
	if rule, ok := c[code]; ok {
		return code, rule
	}
	return NoPromoCode, c[NoPromoCode]
}

// Codes returns the catalog's codes with NONE first and the rest sorted.
func (c PromoCatalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		if code != NoPromoCode {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	if _, ok := c[NoPromoCode]; ok {
		codes = append([]string{NoPromoCode}, codes...)
	}
	return codes
}

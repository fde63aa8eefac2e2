package domain

import (
	"fmt"
	"strings"

	apperrors "holoalarm/internal/platform/errors"
)

// Weekdays lists the repeat tokens in week order. Matching does not consult
// them yet; they are stored and round-tripped only.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// NormalizeRepeat canonicalises tokens, drops duplicates and sorts them in
// week order. The result is never nil.
func NormalizeRepeat(tokens []string) ([]string, error) {
	seen := map[string]bool{}
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		canonical := ""
		for _, d := range Weekdays {
			if strings.EqualFold(d, tok) {
				canonical = d
				break
			}
		}
		if canonical == "" {
			return nil, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, raw)
		}
		seen[canonical] = true
	}
	out := []string{}
	for _, d := range Weekdays {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out, nil
}

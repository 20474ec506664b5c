package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crimewatch/backend/internal/pkg/constants"
)

// DefaultWindowDays is the trailing window applied when a caller
// supplies no range or an unrecognized one.
const DefaultWindowDays = 30

var windowDays = map[string]int{
	"7 days":  7,
	"30 days": 30,
	"90 days": 90,
}

// resolveWindowDays maps an enumerated window token to a day count.
// Unknown tokens fall back to the default, never an error.
func resolveWindowDays(token string) int {
	if days, ok := windowDays[token]; ok {
		return days
	}
	return DefaultWindowDays
}

// ParseWindowDays reads the leading integer of a "<N> days" token.
// Callers must supply a default themselves or substitute one on error.
func ParseWindowDays(token string) (int, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return 0, fmt.Errorf("parse window %q: %w", token, constants.ErrBadWindow)
	}

	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("parse window %q: %w", token, constants.ErrBadWindow)
	}

	return days, nil
}

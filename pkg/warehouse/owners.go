package warehouse

import (
	"strconv"
	"strings"
)

// ownersRangeSeparator splits the population snapshot's owners range, e.g.
// "1,000,000 .. 2,000,000".
const ownersRangeSeparator = " .. "

// ParseOwnersLow extracts the low bound of an owners range as the estimated
// sales figure. Taking the low bound is a deliberate undercount policy.
// A missing or unparseable range coerces to nil.
func ParseOwnersLow(owners *string) *float64 {
	if owners == nil {
		return nil
	}
	low := *owners
	if idx := strings.Index(low, ownersRangeSeparator); idx >= 0 {
		low = low[:idx]
	}
	low = strings.ReplaceAll(strings.TrimSpace(low), ",", "")
	f, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return nil
	}
	return &f
}

// PriceMajorUnits converts a staged price in minor currency units (cents) to
// major units.
func PriceMajorUnits(priceCents *string) *float64 {
	cents := ToNumeric(priceCents)
	if cents == nil {
		return nil
	}
	major := *cents / 100
	return &major
}

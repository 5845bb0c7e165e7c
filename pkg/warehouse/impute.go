package warehouse

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// UnknownCategory fills missing categorical values.
const UnknownCategory = "Unknown"

// ToNumeric parses a staged value permissively: an unparseable or missing
// value coerces to nil instead of failing the row.
func ToNumeric(value *string) *float64 {
	if value == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ToDate parses a staged release date permissively (YYYY-MM-DD).
func ToDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil
	}
	return &t
}

// RoundedMean returns the mean of the non-nil values rounded to the nearest
// whole number, or nil when every value is nil. Exact halves round to the
// nearest even number.
func RoundedMean(values []*float64) *float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	mean := math.RoundToEven(sum / float64(n))
	return &mean
}

// imputeNumericColumn fills the nils of one numeric game column with the
// rounded mean of its non-nil values, computed over the rows as they stand
// after dedup and merge.
func imputeNumericColumn(rows []GameRow, field func(*GameRow) **float64) {
	values := make([]*float64, 0, len(rows))
	for i := range rows {
		values = append(values, *field(&rows[i]))
	}
	mean := RoundedMean(values)
	if mean == nil {
		return
	}
	for i := range rows {
		slot := field(&rows[i])
		if *slot == nil {
			filled := *mean
			*slot = &filled
		}
	}
}

// imputeCategoricalColumn fills the nils of one categorical game column with
// the "Unknown" sentinel.
func imputeCategoricalColumn(rows []GameRow, field func(*GameRow) **string) {
	for i := range rows {
		slot := field(&rows[i])
		if *slot == nil {
			filled := UnknownCategory
			*slot = &filled
		}
	}
}

// ImputeGameRows applies the two-tier imputation policy to the merged game
// rows: numeric columns get their rounded column mean, categorical columns get
// the sentinel. Each column is imputed independently.
func ImputeGameRows(rows []GameRow) {
	imputeNumericColumn(rows, func(g *GameRow) **float64 { return &g.Rating })
	imputeNumericColumn(rows, func(g *GameRow) **float64 { return &g.Metacritic })
	imputeNumericColumn(rows, func(g *GameRow) **float64 { return &g.PlayerCount })
	imputeNumericColumn(rows, func(g *GameRow) **float64 { return &g.Price })
	imputeNumericColumn(rows, func(g *GameRow) **float64 { return &g.Playtime })

	imputeCategoricalColumn(rows, func(g *GameRow) **string { return &g.Developer })
	imputeCategoricalColumn(rows, func(g *GameRow) **string { return &g.Publisher })
}

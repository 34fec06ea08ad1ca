// Package analytics derives statistics from an expense list snapshot.
// Every function is a pure fold: same input, same output, no storage
// access. An empty input is always valid and yields zero/empty results
// so callers can render "no data" states without special-casing.
package analytics

import (
	"math"
	"sort"
	"time"

	"spendwise/internal/models"
)

// MonthPoint is one entry of the monthly spending series.
type MonthPoint struct {
	Month string  `json:"month"` // YYYY-MM
	Label string  `json:"label"` // e.g. "Jun 2024"
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Total sums all expense amounts.
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalsByCategory sums amounts grouped by category. Categories absent
// from the input do not appear in the result.
func TotalsByCategory(expenses []models.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}

// monthKey truncates an ISO date to its YYYY-MM month.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// MonthlySeries buckets expenses into the 12 calendar months ending at
// asOf's month, inclusive, in chronological order. Every month appears
// even when empty; the trend chart needs a continuous axis.
func MonthlySeries(expenses []models.Expense, asOf time.Time) []MonthPoint {
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	series := make([]MonthPoint, 12)
	index := make(map[string]int, 12)
	for i := 0; i < 12; i++ {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		series[i] = MonthPoint{Month: key, Label: month.Format("Jan 2006")}
		index[key] = i
	}

	for _, e := range expenses {
		if i, ok := index[monthKey(e.Date)]; ok {
			series[i].Total += e.Amount
			series[i].Count++
		}
	}
	return series
}

// MonthOverMonthChange returns the percentage change between the total
// of asOf's month and the month before it. When last month's total is
// zero the change is defined as 0 to keep the result finite.
func MonthOverMonthChange(expenses []models.Expense, asOf time.Time) float64 {
	firstOfMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	thisKey := firstOfMonth.Format("2006-01")
	lastKey := firstOfMonth.AddDate(0, -1, 0).Format("2006-01")

	var thisTotal, lastTotal float64
	for _, e := range expenses {
		switch monthKey(e.Date) {
		case thisKey:
			thisTotal += e.Amount
		case lastKey:
			lastTotal += e.Amount
		}
	}

	if lastTotal == 0 {
		return 0
	}
	return (thisTotal - lastTotal) / lastTotal * 100
}

// TopCategory returns the category with the highest summed amount.
// Equal totals break to the lexicographically smaller name, so the
// result does not depend on input order. The boolean is false for an
// empty input.
func TopCategory(expenses []models.Expense) (string, float64, bool) {
	totals := TotalsByCategory(expenses)
	if len(totals) == 0 {
		return "", 0, false
	}

	var best string
	var bestTotal float64
	found := false
	for name, total := range totals {
		if !found || total > bestTotal || (total == bestTotal && name < best) {
			best = name
			bestTotal = total
			found = true
		}
	}
	return best, bestTotal, true
}

// Average returns the mean expense amount rounded to cents, or 0 for
// an empty input.
func Average(expenses []models.Expense) float64 {
	if len(expenses) == 0 {
		return 0
	}
	return math.Round(Total(expenses)/float64(len(expenses))*100) / 100
}

// Largest returns the expense with the maximum amount. Ties break to
// the earlier date, then the smaller id, so the result does not depend
// on input order. The boolean is false for an empty input.
func Largest(expenses []models.Expense) (models.Expense, bool) {
	if len(expenses) == 0 {
		return models.Expense{}, false
	}

	best := expenses[0]
	for _, e := range expenses[1:] {
		if e.Amount > best.Amount {
			best = e
			continue
		}
		if e.Amount == best.Amount {
			if e.Date < best.Date || (e.Date == best.Date && e.ID < best.ID) {
				best = e
			}
		}
	}
	return best, true
}

// DistinctCategories returns the categories present in the input, each
// exactly once, sorted by name.
func DistinctCategories(expenses []models.Expense) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, e := range expenses {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	sort.Strings(categories)
	return categories
}

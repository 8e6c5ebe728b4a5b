// Package report derives the summary metrics shown alongside the filtered
// table: row totals, distinct status counts, and the weighted conclusion
// distribution.
package report

import (
	"sort"
	"strings"

	"github.com/soxboard/soxboard/internal/classify"
	"github.com/soxboard/soxboard/internal/model"
)

// StatusCount is one bar of the status distribution. Weighted is the
// count scaled by the conclusion weight of the status value.
type StatusCount struct {
	Value    string
	Label    classify.Label
	Count    int
	Weighted float64
}

// StatusMetrics summarizes one filtered view of a dataset.
type StatusMetrics struct {
	ByStatus         []StatusCount
	TotalRows        int
	FilteredRows     int
	DistinctStatuses int
}

// Status computes the metrics row for a filtered view. Empty status cells
// count under "Unknown". Counts are ordered largest first, ties by value.
func Status(full, filtered *model.Table, statusField string) StatusMetrics {
	m := StatusMetrics{
		TotalRows:    full.NumRows(),
		FilteredRows: filtered.NumRows(),
	}

	col := filtered.ColumnIndex(statusField)
	if col < 0 {
		return m
	}

	counts := make(map[string]int)
	for r := range filtered.Rows {
		v := strings.TrimSpace(filtered.Cell(r, col))
		if v == "" {
			v = "Unknown"
		}
		counts[v]++
	}

	for value, count := range counts {
		label, weight := classify.Classify(value)
		m.ByStatus = append(m.ByStatus, StatusCount{
			Value:    value,
			Label:    label,
			Count:    count,
			Weighted: weight * float64(count),
		})
	}
	sort.Slice(m.ByStatus, func(i, j int) bool {
		if m.ByStatus[i].Count != m.ByStatus[j].Count {
			return m.ByStatus[i].Count > m.ByStatus[j].Count
		}
		return m.ByStatus[i].Value < m.ByStatus[j].Value
	})
	m.DistinctStatuses = len(m.ByStatus)
	return m
}

package telemetry

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"go.uber.org/multierr"
)

// Summary counts the ticks a mission dwelt in each state.
type Summary struct {
	order []string
	ticks map[string]int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{ticks: map[string]int{}}
}

// Observe counts one tick in the state of the record.
func (s *Summary) Observe(d Diagnostics) {
	if _, ok := s.ticks[d.State]; !ok {
		s.order = append(s.order, d.State)
	}
	s.ticks[d.State]++
}

// Ticks returns the number of ticks spent in the named state.
func (s *Summary) Ticks(state string) int {
	return s.ticks[state]
}

// States returns the observed states in the order they were first seen.
func (s *Summary) States() []string {
	return append([]string(nil), s.order...)
}

// DwellStats describes the distribution of ticks per visited state.
type DwellStats struct {
	Mean    float64
	Median  float64
	Max     float64
	StdDev  float64
	Longest string
}

// Stats computes the dwell distribution. It fails when nothing was observed.
func (s *Summary) Stats() (DwellStats, error) {
	data := make(stats.Float64Data, 0, len(s.order))
	var out DwellStats
	for _, state := range s.order {
		data = append(data, float64(s.ticks[state]))
		if out.Longest == "" || s.ticks[state] > s.ticks[out.Longest] {
			out.Longest = state
		}
	}

	var errMean, errMedian, errMax, errStd error
	out.Mean, errMean = stats.Mean(data)
	out.Median, errMedian = stats.Median(data)
	out.Max, errMax = stats.Max(data)
	out.StdDev, errStd = stats.StandardDeviation(data)
	if err := multierr.Combine(errMean, errMedian, errMax, errStd); err != nil {
		return DwellStats{}, err
	}
	return out, nil
}

// Table renders the ticks per state, with the dwell statistics as a footer when available.
func (s *Summary) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"state", "ticks"})
	for _, state := range s.order {
		t.AppendRow(table.Row{state, s.ticks[state]})
	}
	if st, err := s.Stats(); err == nil {
		t.AppendFooter(table.Row{"mean", fmt.Sprintf("%.1f", st.Mean)})
		t.AppendFooter(table.Row{"median", fmt.Sprintf("%.1f", st.Median)})
		t.AppendFooter(table.Row{"longest", st.Longest})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

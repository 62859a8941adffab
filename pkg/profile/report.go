package profile

import (
	"encoding/json"
	"io"
)

// RunReport summarizes one profiling run for operators and CI.
type RunReport struct {
	Samples     uint64 `json:"samples"`
	Truncated   uint64 `json:"samples_truncated"`
	WriteErrors uint64 `json:"write_errors"`
	BytesOut    uint64 `json:"bytes_out"`
}

type RunReportOption func(*RunReport)

func NewRunReport(opts ...RunReportOption) *RunReport {
	report := new(RunReport)
	for _, opt := range opts {
		opt(report)
	}

	return report
}

func WithReportStats(stats Stats) RunReportOption {
	return func(o *RunReport) {
		o.Samples = stats.Samples
		o.Truncated = stats.Truncated
		o.WriteErrors = stats.WriteErrors
		o.BytesOut = stats.BytesOut
	}
}

func (r *RunReport) WriteReport(w io.Writer) error {
	encoder := json.NewEncoder(w)

	return encoder.Encode(r)
}

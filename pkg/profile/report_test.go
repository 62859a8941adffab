package profile_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxgio92/kprof/pkg/profile"
)

func TestNewRunReportFromStats(t *testing.T) {
	stats := profile.Stats{
		Samples:     10,
		Truncated:   3,
		WriteErrors: 1,
		BytesOut:    250,
	}

	report := profile.NewRunReport(profile.WithReportStats(stats))
	require.Equal(t, stats.Samples, report.Samples)
	require.Equal(t, stats.Truncated, report.Truncated)
	require.Equal(t, stats.WriteErrors, report.WriteErrors)
	require.Equal(t, stats.BytesOut, report.BytesOut)
}

func TestWriteReportJSONOutput(t *testing.T) {
	report := profile.NewRunReport(profile.WithReportStats(profile.Stats{
		Samples:  42,
		BytesOut: 1050,
	}))

	var buf bytes.Buffer
	err := report.WriteReport(&buf)
	require.NoError(t, err)

	var parsed profile.RunReport
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Equal(t, report, &parsed)

	require.True(t, strings.Contains(buf.String(), "samples_truncated"))
}

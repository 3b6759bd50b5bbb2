package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/logrusorgru/aurora/v3"
	"github.com/mt-inside/http-log/pkg/output"
	"github.com/stretchr/testify/require"

	"github.com/mt-inside/flow-check/pkg/state"
)

func styler(colour bool) output.TtyStyler {
	return output.NewTtyStyler(aurora.NewAurora(colour))
}

func TestReporterLinesAndCounts(t *testing.T) {
	var out bytes.Buffer
	stats := state.NewRunStats("m", time.Second)
	r := NewReporter(&out, styler(false), stats)

	require.NoError(t, r.Flow(state.FlowRecord{ID: "FLOW0001", EndpointSpec: "localhost:80"}, state.OutcomeConnected()))
	require.NoError(t, r.Flow(state.FlowRecord{ID: "FLOW0002", EndpointSpec: "nope.invalid:80"}, state.OutcomeUnresolved(nil)))
	require.NoError(t, r.Flow(state.FlowRecord{ID: "FLOW0003", EndpointSpec: "127.0.0.1:1"}, state.OutcomeConnectFailed(state.CauseConnectionRefused, nil)))

	require.Equal(t,
		"FLOW0001 localhost:80 OK\n"+
			"FLOW0002 nope.invalid:80 HostnameUnresolved\n"+
			"FLOW0003 127.0.0.1:1 ConnectionRefused\n",
		out.String(),
	)

	require.Equal(t, uint64(3), stats.TotalFlows)
	require.Equal(t, uint64(1), stats.OK)
	require.Equal(t, uint64(1), stats.Unresolved)
	require.Equal(t, uint64(1), stats.OtherFailures)
}

func TestReporterFlushesEachLine(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, styler(false), state.NewRunStats("m", time.Second))

	require.NoError(t, r.Flow(state.FlowRecord{ID: "A", EndpointSpec: "a:1"}, state.OutcomeConnected()))
	require.Equal(t, "A a:1 OK\n", out.String())
}

func TestReporterColour(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, styler(true), state.NewRunStats("m", time.Second))

	require.NoError(t, r.Flow(state.FlowRecord{ID: "A", EndpointSpec: "a:1"}, state.OutcomeConnected()))
	require.Contains(t, out.String(), "\x1b[")
	require.Contains(t, out.String(), "OK")
}

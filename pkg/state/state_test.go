package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTokens(t *testing.T) {
	require.Equal(t, "OK", OutcomeConnected().Token())
	require.Equal(t, "HostnameUnresolved", OutcomeUnresolved(errors.New("nxdomain")).Token())
	require.Equal(t, "ConnectionRefused", OutcomeConnectFailed(CauseConnectionRefused, nil).Token())
	require.Equal(t, "TimedOut", OutcomeConnectFailed(CauseTimedOut, nil).Token())
	require.Equal(t, "PermissionDenied", OutcomeConnectFailed(CausePermissionDenied, nil).Token())
	require.Equal(t, "Other", OutcomeConnectFailed(CauseOther, nil).Token())
	require.Equal(t, "Other", Cause(200).String())
}

func TestRunStatsBuckets(t *testing.T) {
	rs := NewRunStats("/var/tmp/host", time.Second)
	require.NotEmpty(t, rs.RunID)

	for _, o := range []Outcome{
		OutcomeConnected(),
		OutcomeUnresolved(nil),
		OutcomeUnresolved(nil),
		OutcomeConnectFailed(CauseTimedOut, nil),
		OutcomeConnectFailed(CauseOther, nil),
		OutcomeConnectFailed(CauseConnectionRefused, nil),
	} {
		rs.AddFlow()
		rs.AddOutcome(o)
	}

	require.Equal(t, uint64(6), rs.TotalFlows)
	require.Equal(t, uint64(1), rs.OK)
	require.Equal(t, uint64(2), rs.Unresolved)
	require.Equal(t, uint64(3), rs.OtherFailures)
	require.Equal(t, rs.TotalFlows, rs.OK+rs.Unresolved+rs.OtherFailures)
	require.Equal(t, "(Lines:6, OK:1, Unresolved:2, Other: 3)", rs.String())
}

func TestRunStatsPrint(t *testing.T) {
	rs := NewRunStats("/var/tmp/host", 10*time.Second)
	rs.AddFlow()
	rs.AddOutcome(OutcomeConnected())

	var text bytes.Buffer
	require.NoError(t, rs.Print(&text, SummaryText))
	require.Equal(t, "(Lines:1, OK:1, Unresolved:0, Other: 0)\n", text.String())

	var js bytes.Buffer
	require.NoError(t, rs.Print(&js, SummaryJSON))
	var fromJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	require.Equal(t, rs.RunID, fromJSON["run_id"])
	require.Equal(t, "10s", fromJSON["timeout"])
	require.EqualValues(t, 1, fromJSON["ok"])

	var ym bytes.Buffer
	require.NoError(t, rs.Print(&ym, SummaryYAML))
	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	require.Equal(t, "/var/tmp/host", fromYAML["manifest"])
	require.EqualValues(t, 1, fromYAML["total_flows"])
}

func TestParseSummaryFormat(t *testing.T) {
	f, err := ParseSummaryFormat("yaml")
	require.NoError(t, err)
	require.Equal(t, SummaryYAML, f)

	_, err = ParseSummaryFormat("xml")
	require.Error(t, err)
}

func TestParseTimeout(t *testing.T) {
	log := logr.Discard()

	require.Equal(t, 10*time.Second, ParseTimeout(log, ""))
	require.Equal(t, 1*time.Second, ParseTimeout(log, "1"))
	require.Equal(t, 30*time.Second, ParseTimeout(log, " 30 "))
	require.Equal(t, 10*time.Second, ParseTimeout(log, "ten"))
	require.Equal(t, 10*time.Second, ParseTimeout(log, "0"))
	require.Equal(t, 10*time.Second, ParseTimeout(log, "-3"))
}

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mt-inside/http-log/pkg/output"

	"github.com/mt-inside/flow-check/pkg/state"
)

// Reporter prints one line per flow, in the order it's handed them, and tallies the run.
type Reporter struct {
	w     *bufio.Writer
	s     output.TtyStyler
	stats *state.RunStats
}

func NewReporter(w io.Writer, s output.TtyStyler, stats *state.RunStats) *Reporter {
	return &Reporter{
		w:     bufio.NewWriter(w),
		s:     s,
		stats: stats,
	}
}

// Flow writes `<id> <endpoint> <status>` and flushes before returning, so a slow probe never leaves earlier lines buffered.
func (r *Reporter) Flow(rec state.FlowRecord, outcome state.Outcome) error {
	r.stats.AddFlow()
	r.stats.AddOutcome(outcome)

	fmt.Fprintf(r.w, "%s %s %s\n", rec.ID, rec.EndpointSpec, r.token(outcome))
	return r.w.Flush()
}

func (r *Reporter) token(o state.Outcome) string {
	t := o.Token()
	switch o.Kind {
	case state.Connected:
		return r.s.Ok(t)
	case state.Unresolved:
		return r.s.Warn(t)
	default:
		return r.s.Fail(t)
	}
}

package run

import (
	"context"
	"io"
	"net/netip"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/mt-inside/http-log/pkg/output"

	"github.com/mt-inside/flow-check/pkg/manifest"
	"github.com/mt-inside/flow-check/pkg/probes"
	"github.com/mt-inside/flow-check/pkg/report"
	"github.com/mt-inside/flow-check/pkg/state"
)

type Prober interface {
	Probe(ctx context.Context, addr netip.AddrPort) state.Outcome
}

type Options struct {
	ManifestPath string
	Timeout      time.Duration

	Resolver probes.Resolver
	// Defaults to a TCP prober using Timeout
	Prober Prober

	Out    io.Writer
	Styler output.TtyStyler
}

/* Run checks every flow in the manifest, strictly one after another: flow N+1 isn't read until flow N's probe has finished.
* Output is therefore in manifest order.
* If the manifest can't be opened, nothing is printed and the error is returned.
* A read error part-way through aborts the run; the stats so far come back alongside the error.
 */
func Run(ctx context.Context, log logr.Logger, opts Options) (*state.RunStats, error) {
	rd, err := manifest.Open(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	prober := opts.Prober
	if prober == nil {
		prober = probes.NewProber(log, opts.Timeout)
	}

	stats := state.NewRunStats(opts.ManifestPath, opts.Timeout)
	rep := report.NewReporter(opts.Out, opts.Styler, stats)

	log = log.WithValues("run", stats.RunID)
	log.Info("Checking flows", "manifest", opts.ManifestPath, "timeout", opts.Timeout)

	for rd.Scan() {
		rec := rd.Record()
		outcome := check(ctx, log, opts.Resolver, prober, rec)
		if err := rep.Flow(rec, outcome); err != nil {
			return stats, err
		}
	}
	if err := rd.Err(); err != nil {
		return stats, err
	}

	log.Info("Done", "flows", stats.TotalFlows, "ok", stats.OK, "unresolved", stats.Unresolved, "other", stats.OtherFailures)
	return stats, nil
}

func check(ctx context.Context, log logr.Logger, resolver probes.Resolver, prober Prober, rec state.FlowRecord) state.Outcome {
	log = log.WithValues("flow", rec.ID)

	addrs, err := resolver.Resolve(ctx, rec.EndpointSpec)
	if err != nil {
		log.V(1).Info("Unresolved", "endpoint", rec.EndpointSpec, "error", err.Error())
		return state.OutcomeUnresolved(err)
	}

	addr, ok := probes.First(addrs)
	if !ok {
		return state.OutcomeUnresolved(probes.ErrUnresolved)
	}
	if len(addrs) > 1 && log.V(2).Enabled() {
		log.V(2).Info("Multiple candidates, using first", "candidates", spew.Sdump(addrs))
	}
	log.V(1).Info("Resolved", "endpoint", rec.EndpointSpec, "addr", addr)

	return prober.Probe(ctx, addr)
}

package main

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora/v3"
	"github.com/mt-inside/http-log/pkg/bios"
	"github.com/mt-inside/http-log/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mt-inside/flow-check/pkg/manifest"
	"github.com/mt-inside/flow-check/pkg/probes"
	"github.com/mt-inside/flow-check/pkg/state"
	"github.com/mt-inside/flow-check/pkg/utils"
)

/* Shows what flow-check would dial, and what it throws away.
* Never connects to anything.
 */

func main() {

	cmd := &cobra.Command{
		Use:           "flow-addrs",
		Short:         "Print every address each flow resolves to",
		Args:          cobra.NoArgs,
		RunE:          appMain,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	err := state.AddCommonFlags(cmd)
	if err != nil {
		panic(fmt.Errorf("can't set up flags: %w", err))
	}

	err = cmd.Execute()
	if err != nil {
		b := bios.NewTtyBios(output.NewTtyStyler(aurora.NewAurora(false)))
		b.Unwrap(err)
	}
}

func appMain(cmd *cobra.Command, args []string) error {
	log := utils.NewLogger(viper.GetInt("verbose"))

	settings, err := state.SettingsFromViper(log)
	if err != nil {
		return err
	}
	s := output.NewTtyStyler(aurora.NewAurora(settings.Colour))

	resolver, err := probes.NewResolver(log, settings.Resolver, settings.ResolveTimeout)
	if err != nil {
		return err
	}

	rd, err := manifest.Open(manifest.Path(settings.BaseDir, settings.Host))
	if err != nil {
		return err
	}
	defer rd.Close()

	ctx := context.Background()
	for rd.Scan() {
		rec := rd.Record()

		addrs, err := resolver.Resolve(ctx, rec.EndpointSpec)
		if err != nil {
			fmt.Printf("%s %s %s\n", rec.ID, rec.EndpointSpec, s.Warn(state.OutcomeUnresolved(err).Token()))
			continue
		}
		if settings.Verbosity > 1 {
			log.V(2).Info("Candidates", "flow", rec.ID, "addrs", spew.Sdump(addrs))
		}

		first, _ := probes.First(addrs)
		ss := make([]string, 0, len(addrs))
		for _, addr := range addrs {
			ss = append(ss, addr.String())
		}
		fmt.Printf("%s %s %s (candidates: %s)\n", rec.ID, rec.EndpointSpec, s.Addr(first.String()), s.List(ss, output.AddrStyle))
	}

	return rd.Err()
}

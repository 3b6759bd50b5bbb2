package main

import (
	"context"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora/v3"
	"github.com/mt-inside/http-log/pkg/bios"
	"github.com/mt-inside/http-log/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mt-inside/flow-check/internal/build"
	"github.com/mt-inside/flow-check/pkg/manifest"
	"github.com/mt-inside/flow-check/pkg/probes"
	"github.com/mt-inside/flow-check/pkg/run"
	"github.com/mt-inside/flow-check/pkg/state"
	"github.com/mt-inside/flow-check/pkg/utils"
)

func main() {

	cmd := &cobra.Command{
		Use:           build.Name,
		Short:         "Check this host's expected network flows are reachable",
		Version:       build.Version(),
		Args:          cobra.NoArgs,
		RunE:          appMain,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// String rather than Int so a garbage value can fall back to the default instead of failing the run
	cmd.Flags().StringP("timeout", "t", "10", "Time in seconds to wait for each connection")
	cmd.Flags().String("summary", string(state.SummaryText), "Summary format: text, json or yaml")
	err := state.AddCommonFlags(cmd)
	if err != nil {
		panic(fmt.Errorf("can't set up flags: %w", err))
	}

	err = cmd.Execute()
	if err != nil {
		// Styling isn't known until the flags are parsed, and the run may never have got that far
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

	resolver, err := probes.NewResolver(log, settings.Resolver, settings.ResolveTimeout)
	if err != nil {
		return err
	}
	log.V(1).Info("Resolver", "kind", settings.Resolver, "system", probes.SystemResolverName)

	stats, err := run.Run(context.Background(), log, run.Options{
		ManifestPath: manifest.Path(settings.BaseDir, settings.Host),
		Timeout:      settings.Timeout,
		Resolver:     resolver,
		Out:          os.Stdout,
		Styler:       output.NewTtyStyler(aurora.NewAurora(settings.Colour)),
	})
	if err != nil {
		return err
	}

	return stats.Print(os.Stdout, settings.Summary)
}

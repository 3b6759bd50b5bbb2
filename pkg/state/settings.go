package state

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultTimeoutSeconds = 10
	EnvPrefix             = "FLOWCHECK"
)

type ResolverKind string

const (
	ResolverSystem ResolverKind = "system"
	ResolverDNS    ResolverKind = "dns"
)

// Settings is everything the binaries need, already defaulted and validated.
type Settings struct {
	BaseDir        string
	Host           string
	Timeout        time.Duration
	Resolver       ResolverKind
	ResolveTimeout time.Duration
	Summary        SummaryFormat
	Colour         bool
	Verbosity      int
}

// AddCommonFlags registers the flags every binary shares and binds them, and the environment, into viper.
func AddCommonFlags(cmd *cobra.Command) error {
	cmd.Flags().StringP("path", "p", "", "Directory containing flow files, one for each hostname")
	cmd.Flags().StringP("hostname", "n", "", "Use this hostname's flow file (default is this machine's hostname)")
	cmd.Flags().String("resolver", string(ResolverSystem), "How to resolve names: system (Go/libc resolver) or dns (query resolv.conf nameservers directly)")
	cmd.Flags().Duration("resolve-timeout", 0, "Bound on name resolution per flow (0 leaves the platform default)")
	cmd.Flags().String("color", "auto", "Colourise output: auto, always or never")
	cmd.Flags().CountP("verbose", "v", "Log more (repeatable)")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return nil
}

func SettingsFromViper(log logr.Logger) (*Settings, error) {
	s := &Settings{
		BaseDir:        viper.GetString("path"),
		Host:           viper.GetString("hostname"),
		Timeout:        ParseTimeout(log, viper.GetString("timeout")),
		ResolveTimeout: viper.GetDuration("resolve-timeout"),
		Verbosity:      viper.GetInt("verbose"),
	}

	if s.BaseDir == "" {
		return nil, errors.New("--path is required")
	}

	if s.Host == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("can't get this machine's hostname: %w", err)
		}
		s.Host = host
	}

	switch k := ResolverKind(viper.GetString("resolver")); k {
	case ResolverSystem, ResolverDNS:
		s.Resolver = k
	default:
		return nil, fmt.Errorf("unknown resolver %q (want system or dns)", k)
	}

	summary := viper.GetString("summary")
	if summary == "" {
		summary = string(SummaryText)
	}
	format, err := ParseSummaryFormat(summary)
	if err != nil {
		return nil, err
	}
	s.Summary = format

	switch c := viper.GetString("color"); c {
	case "always":
		s.Colour = true
	case "never":
		s.Colour = false
	case "auto", "":
		s.Colour = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto, always or never)", c)
	}

	return s, nil
}

// ParseTimeout takes whole seconds. Anything unparseable or not positive gets the default rather than an error.
func ParseTimeout(log logr.Logger, raw string) time.Duration {
	if raw == "" {
		return DefaultTimeoutSeconds * time.Second
	}
	secs, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || secs == 0 {
		log.Info("Ignoring bad timeout, using default", "timeout", raw, "default", DefaultTimeoutSeconds)
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(secs) * time.Second
}

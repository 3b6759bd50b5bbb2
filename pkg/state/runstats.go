package state

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type RunStats struct {
	RunID        string
	ManifestPath string
	Timeout      time.Duration

	TotalFlows    uint64
	OK            uint64
	Unresolved    uint64
	OtherFailures uint64
}

func NewRunStats(manifestPath string, timeout time.Duration) *RunStats {
	return &RunStats{
		RunID:        uuid.NewString(),
		ManifestPath: manifestPath,
		Timeout:      timeout,
	}
}

// AddFlow counts a line that split into an id and an endpoint, whatever then happens to it.
func (rs *RunStats) AddFlow() {
	rs.TotalFlows++
}

// AddOutcome bumps exactly one of the outcome buckets.
func (rs *RunStats) AddOutcome(o Outcome) {
	switch o.Kind {
	case Connected:
		rs.OK++
	case Unresolved:
		rs.Unresolved++
	default:
		rs.OtherFailures++
	}
}

func (rs *RunStats) String() string {
	return fmt.Sprintf("(Lines:%d, OK:%d, Unresolved:%d, Other: %d)", rs.TotalFlows, rs.OK, rs.Unresolved, rs.OtherFailures)
}

type SummaryFormat string

const (
	SummaryText SummaryFormat = "text"
	SummaryJSON SummaryFormat = "json"
	SummaryYAML SummaryFormat = "yaml"
)

func ParseSummaryFormat(s string) (SummaryFormat, error) {
	switch f := SummaryFormat(s); f {
	case SummaryText, SummaryJSON, SummaryYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown summary format %q (want text, json or yaml)", s)
}

type summaryDoc struct {
	RunID         string `json:"run_id" yaml:"run_id"`
	Manifest      string `json:"manifest" yaml:"manifest"`
	Timeout       string `json:"timeout" yaml:"timeout"`
	TotalFlows    uint64 `json:"total_flows" yaml:"total_flows"`
	OK            uint64 `json:"ok" yaml:"ok"`
	Unresolved    uint64 `json:"unresolved" yaml:"unresolved"`
	OtherFailures uint64 `json:"other_failures" yaml:"other_failures"`
}

func (rs *RunStats) Print(w io.Writer, format SummaryFormat) error {
	doc := summaryDoc{
		RunID:         rs.RunID,
		Manifest:      rs.ManifestPath,
		Timeout:       rs.Timeout.String(),
		TotalFlows:    rs.TotalFlows,
		OK:            rs.OK,
		Unresolved:    rs.Unresolved,
		OtherFailures: rs.OtherFailures,
	}

	switch format {
	case SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case SummaryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, rs.String())
		return err
	}
}

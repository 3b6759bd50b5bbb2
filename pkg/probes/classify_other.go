//go:build !unix

package probes

import (
	"github.com/mt-inside/flow-check/pkg/state"
)

// TODO: map the WSAE* codes on windows; until then only timeouts are told apart.
func classifyErrno(err error) state.Cause {
	return state.CauseOther
}

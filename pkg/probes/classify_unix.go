//go:build unix

package probes

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/mt-inside/flow-check/pkg/state"
)

func classifyErrno(err error) state.Cause {
	switch {
	case errors.Is(err, unix.ECONNREFUSED):
		return state.CauseConnectionRefused
	case errors.Is(err, unix.ETIMEDOUT):
		return state.CauseTimedOut
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return state.CausePermissionDenied
	case errors.Is(err, unix.EHOSTUNREACH), errors.Is(err, unix.EHOSTDOWN):
		return state.CauseHostUnreachable
	case errors.Is(err, unix.ENETUNREACH), errors.Is(err, unix.ENETDOWN):
		return state.CauseNetworkUnreachable
	case errors.Is(err, unix.ECONNRESET):
		return state.CauseConnectionReset
	case errors.Is(err, unix.EADDRNOTAVAIL):
		return state.CauseAddrNotAvailable
	}
	return state.CauseOther
}

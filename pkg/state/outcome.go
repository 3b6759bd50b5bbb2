package state

// OutcomeKind is what happened to a single flow.
type OutcomeKind uint8

const (
	Connected OutcomeKind = iota
	Unresolved
	ConnectFailed
)

// Cause is the transport-level reason a connect attempt failed.
// Platforms don't all expose the same errnos, so anything unrecognised is CauseOther.
type Cause uint8

const (
	CauseOther Cause = iota
	CauseConnectionRefused
	CauseTimedOut
	CausePermissionDenied
	CauseHostUnreachable
	CauseNetworkUnreachable
	CauseConnectionReset
	CauseAddrNotAvailable
)

var causeNames = [...]string{
	CauseOther:              "Other",
	CauseConnectionRefused:  "ConnectionRefused",
	CauseTimedOut:           "TimedOut",
	CausePermissionDenied:   "PermissionDenied",
	CauseHostUnreachable:    "HostUnreachable",
	CauseNetworkUnreachable: "NetworkUnreachable",
	CauseConnectionReset:    "ConnectionReset",
	CauseAddrNotAvailable:   "AddrNotAvailable",
}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return causeNames[CauseOther]
}

// Outcome is produced once per flow and consumed straight away by the reporter.
// Cause and Err are only meaningful for ConnectFailed.
type Outcome struct {
	Kind  OutcomeKind
	Cause Cause
	Err   error
}

func OutcomeConnected() Outcome {
	return Outcome{Kind: Connected}
}

func OutcomeUnresolved(err error) Outcome {
	return Outcome{Kind: Unresolved, Err: err}
}

func OutcomeConnectFailed(cause Cause, err error) Outcome {
	return Outcome{Kind: ConnectFailed, Cause: cause, Err: err}
}

// Token is the status word printed at the end of a report line.
func (o Outcome) Token() string {
	switch o.Kind {
	case Connected:
		return "OK"
	case Unresolved:
		return "HostnameUnresolved"
	default:
		return o.Cause.String()
	}
}

package probes

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"syscall"
	"time"

	"github.com/go-logr/logr"

	"github.com/mt-inside/flow-check/pkg/state"
)

// Prober makes exactly one TCP connection attempt per call. It never retries.
type Prober struct {
	log    logr.Logger
	dialer *net.Dialer
}

func NewProber(log logr.Logger, timeout time.Duration) *Prober {
	return &Prober{
		log: log,
		dialer: &net.Dialer{
			Timeout: timeout,
			// No keepalive probes; the socket lives for one handshake
			KeepAlive: -1,
			// Note: happens "after creating the network connection but before actually dialing."
			Control: func(network, address string, rawConn syscall.RawConn) error {
				log.V(1).Info("Dialing", "net", network, "addr", address)
				return nil
			},
		},
	}
}

// Probe connects to addr and, if that works, shuts the connection down in both directions before returning.
// The timeout bounds the connect only.
func (p *Prober) Probe(ctx context.Context, addr netip.AddrPort) state.Outcome {
	conn, err := p.dialer.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		cause := Classify(err)
		p.log.V(1).Info("Connect failed", "addr", addr, "cause", cause, "error", err.Error())
		return state.OutcomeConnectFailed(cause, err)
	}
	p.log.V(1).Info("Connected", "to", conn.RemoteAddr(), "from", conn.LocalAddr())

	p.closeGracefully(conn)

	return state.OutcomeConnected()
}

func (p *Prober) closeGracefully(conn net.Conn) {
	// Close() always runs; the handshake already succeeded so shutdown errors don't change the verdict
	defer func() {
		if err := conn.Close(); err != nil {
			p.log.V(1).Info("Close failed", "addr", conn.RemoteAddr(), "error", err.Error())
		}
	}()

	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	if err := tcp.CloseWrite(); err != nil {
		p.log.V(1).Info("Shutdown (write) failed", "addr", conn.RemoteAddr(), "error", err.Error())
	}
	if err := tcp.CloseRead(); err != nil {
		p.log.V(1).Info("Shutdown (read) failed", "addr", conn.RemoteAddr(), "error", err.Error())
	}
}

// Classify maps a dial error onto the closed set of causes, falling back to CauseOther.
func Classify(err error) state.Cause {
	if err == nil {
		return state.CauseOther
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return state.CauseTimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return state.CauseTimedOut
	}

	return classifyErrno(err)
}

package probes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/mt-inside/flow-check/pkg/state"
)

var ErrUnresolved = errors.New("hostname unresolved")

// Resolver turns a `host:port` endpoint spec into candidate socket addresses, in the order they should be tried.
type Resolver interface {
	Resolve(ctx context.Context, endpointSpec string) ([]netip.AddrPort, error)
}

// SplitEndpoint separates host and port. The port has to be a plain decimal that fits in 16 bits.
// IPv6 literals may come bracketed or bare (`2001:db8::1:443`); a bare one splits at the last colon.
func SplitEndpoint(endpointSpec string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(endpointSpec)
	if err != nil {
		i := strings.LastIndexByte(endpointSpec, ':')
		if i < 0 {
			return "", 0, err
		}
		if _, perr := netip.ParseAddr(endpointSpec[:i]); perr != nil {
			return "", 0, err
		}
		host, portStr = endpointSpec[:i], endpointSpec[i+1:]
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, uint16(port), nil
}

// First picks the candidate that gets probed. No family preference, no happy-eyeballs.
func First(addrs []netip.AddrPort) (netip.AddrPort, bool) {
	if len(addrs) == 0 {
		return netip.AddrPort{}, false
	}
	return addrs[0], true
}

// SystemResolver uses the Go stdlib lookup functions, which may in turn be calling libc (see SystemResolverName).
type SystemResolver struct {
	resolver *net.Resolver
	// Zero means no bound beyond the platform's own.
	timeout time.Duration
}

func NewSystemResolver(timeout time.Duration) *SystemResolver {
	return &SystemResolver{resolver: net.DefaultResolver, timeout: timeout}
}

func (r *SystemResolver) Resolve(ctx context.Context, endpointSpec string) ([]netip.AddrPort, error) {
	host, port, err := SplitEndpoint(endpointSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, endpointSpec, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// Literals come straight back without touching the network
	ips, err := r.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, endpointSpec, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s: no addresses", ErrUnresolved, endpointSpec)
	}

	addrs := make([]netip.AddrPort, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, netip.AddrPortFrom(ip.Unmap(), port))
	}
	return addrs, nil
}

// NewResolver builds the resolver named by kind.
func NewResolver(log logr.Logger, kind state.ResolverKind, timeout time.Duration) (Resolver, error) {
	switch kind {
	case state.ResolverDNS:
		return NewDNSResolverFromFile(log, ResolvConfPath, timeout)
	case state.ResolverSystem, "":
		return NewSystemResolver(timeout), nil
	}
	return nil, fmt.Errorf("unknown resolver %q", kind)
}

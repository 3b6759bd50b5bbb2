package probes

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

const ResolvConfPath = "/etc/resolv.conf"

// DNSResolver asks the resolv.conf nameservers directly, rather than going through the system resolver.
// This only looks in DNS, like say nslookup does; /etc/hosts and nsswitch sources are never consulted.
type DNSResolver struct {
	log    logr.Logger
	config *dns.ClientConfig
	client *dns.Client
}

func NewDNSResolverFromFile(log logr.Logger, path string, timeout time.Duration) (*DNSResolver, error) {
	config, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read resolver config %s: %w", path, err)
	}
	return NewDNSResolver(log, config, timeout), nil
}

// NewDNSResolver uses timeout per query; zero leaves the dns library's default.
func NewDNSResolver(log logr.Logger, config *dns.ClientConfig, timeout time.Duration) *DNSResolver {
	return &DNSResolver{
		log:    log,
		config: config,
		client: &dns.Client{Net: "udp", Timeout: timeout},
	}
}

/* Ordering
* - every server in resolv.conf order, moving on only if the server errors
* - every name on the search path (ClientConfig.NameList honours ndots)
* - A before AAAA, so a dual-stack name's first candidate is v4
 */
func (r *DNSResolver) Resolve(ctx context.Context, endpointSpec string) ([]netip.AddrPort, error) {
	host, port, err := SplitEndpoint(endpointSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, endpointSpec, err)
	}

	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.AddrPort{netip.AddrPortFrom(ip.Unmap(), port)}, nil
	}

	// IDNA's lookup profile rejects underscores (my_host.corp), so plain ASCII goes out as-is
	asciiHost := host
	if !isASCII(host) {
		asciiHost, err = idna.Lookup.ToASCII(host)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, endpointSpec, err)
		}
	}

	ips, err := r.lookup(ctx, asciiHost)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, endpointSpec, err)
	}

	addrs := make([]netip.AddrPort, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, netip.AddrPortFrom(ip, port))
	}
	return addrs, nil
}

func (r *DNSResolver) lookup(ctx context.Context, name string) ([]netip.Addr, error) {
	if len(r.config.Servers) == 0 {
		return nil, fmt.Errorf("no nameservers configured")
	}

	names := r.config.NameList(name)

	var lastErr error
serversLoop:
	for _, serverHost := range r.config.Servers {
		server := net.JoinHostPort(serverHost, r.config.Port)
		r.log.V(1).Info("Trying DNS server", "addr", server)

		for _, fqdn := range names {
			r.log.V(1).Info("Trying search path item", "fqdn", fqdn)

			var ips []netip.Addr
			for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
				m := new(dns.Msg)
				m.SetQuestion(fqdn, qtype)

				in, _, err := r.client.ExchangeContext(ctx, m, server)
				if err != nil {
					lastErr = err
					continue serversLoop
				}
				if in.Rcode != dns.RcodeSuccess && in.Rcode != dns.RcodeNameError {
					lastErr = fmt.Errorf("%s from %s", dns.RcodeToString[in.Rcode], server)
					continue serversLoop
				}

				ips = append(ips, answerAddrs(in.Answer)...)
			}

			if len(ips) > 0 {
				return ips, nil
			}
		}

		// A server answered authoritatively-enough that nothing exists; asking the next one won't change that
		return nil, fmt.Errorf("%s: NXDOMAIN", name)
	}

	return nil, fmt.Errorf("all DNS servers failed: %w", lastErr)
}

// CNAMEs in the answer are skipped over; the addresses at the end of the chain are what count.
func answerAddrs(answers []dns.RR) []netip.Addr {
	var ips []netip.Addr
	for _, ans := range answers {
		switch t := ans.(type) {
		case *dns.A:
			if ip, ok := netip.AddrFromSlice(t.A.To4()); ok {
				ips = append(ips, ip)
			}
		case *dns.AAAA:
			if ip, ok := netip.AddrFromSlice(t.AAAA.To16()); ok {
				ips = append(ips, ip.Unmap())
			}
		}
	}
	return ips
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

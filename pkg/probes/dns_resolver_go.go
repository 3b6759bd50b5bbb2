//go:build !cgo || netgo

package probes

// Builds without cgo, or with netgo, never reach libc. See dns_resolver_libc.go.

const SystemResolverName = "Go native (/etc/hosts and DNS only; nsswitch sources like NIS/LDAP are not consulted)"

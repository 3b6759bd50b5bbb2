//go:build cgo && !netgo

package probes

/* SystemResolverName is logged at startup so a HostnameUnresolved from the system resolver can be read correctly.
* With libc doing the lookup, the failure might be nsswitch (files, LDAP, mdns, ...) and not DNS at all.
* `--resolver dns` takes nsswitch out of the picture.
*
* Which one a binary got is decided at build time, hence the tag pair:
* cgo without netgo means libc, anything else the Go resolver (dns_resolver_go.go).
 */

const SystemResolverName = "libc getaddrinfo() via cgo (honours nsswitch)"

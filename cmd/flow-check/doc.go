/* Draft docs:
*
* MANIFESTS
* * One file per host, at `--path`/`hostname`. The hostname is this machine's (as `hostname` would print it) unless `-n` is given
* * Each line is `id=host:port`, eg `FLOW0001=google.com:80`
* * Blank lines and `#` comments are skipped. So is anything else that isn't exactly one `=` - silently, it isn't counted
*
* RESOLUTION
* * Default is the Go std library resolver, which may be Go-native or libc's `getaddrinfo()` depending on the build (`-v` prints which)
* * `--resolver dns` asks the resolv.conf nameservers directly, A then AAAA, walking the search path. No /etc/hosts
* * Either way the first address is the one that's connected to. `flow-addrs` shows all of them
* * A name that doesn't resolve, or a port that isn't a number, is `HostnameUnresolved`
*
* CONNECTION
* * One TCP connect per flow, bounded by `-t` seconds, never retried
* * On success the socket is shut down both ways and closed before the next flow starts
* * Failures print the reason: ConnectionRefused, TimedOut, PermissionDenied, HostUnreachable, NetworkUnreachable, ConnectionReset, AddrNotAvailable, or Other
*
* OUTPUT
* * stdout: `<id> <endpoint> <status>` per flow, in file order, then a summary line `(Lines:N, OK:N, Unresolved:N, Other: N)`
* * stderr: logs
* * Exit 1 only if the run couldn't start (eg no flow file for this host)
 */
package main

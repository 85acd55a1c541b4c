package executor

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// validateURL checks scheme, hostname denylist, and (for an IP literal
// host) the private-range classification, without touching the network.
// This is the cheap first gate; validateResolvedAddrs below closes the
// DNS-rebinding gap this alone cannot.
func validateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.InvalidCommand, err, "invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, toolerr.New(toolerr.Security, "only http/https schemes allowed, got: %s", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return nil, toolerr.New(toolerr.InvalidCommand, "URL must have a host")
	}
	if isLocalhostName(host) {
		return nil, toolerr.New(toolerr.Security, "access to localhost is not allowed")
	}
	if isMetadataService(host) {
		return nil, toolerr.New(toolerr.Security, "access to metadata service blocked")
	}
	if ip := net.ParseIP(host); ip != nil && isPrivateOrRestrictedIP(ip) {
		return nil, toolerr.New(toolerr.Security, "access to private/restricted IP blocked")
	}
	return u, nil
}

func isLocalhostName(host string) bool {
	switch strings.ToLower(host) {
	case "localhost", "localhost.localdomain":
		return true
	default:
		return false
	}
}

func isMetadataService(host string) bool {
	return host == "169.254.169.254" || host == "metadata.google.internal"
}

// isPrivateOrRestrictedIP classifies an address as unsafe to connect to,
// with one deployment-specific exception: fdaa::/16 is allowed through,
// since it is this deployment's own private mesh network rather than a
// hop an attacker could redirect a request to.
func isPrivateOrRestrictedIP(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		return isPrivateIPv4(v4)
	}
	return isPrivateIPv6(ip)
}

func isPrivateIPv4(ip net.IP) bool {
	if ip[0] == 10 {
		return true
	}
	if ip[0] == 172 && ip[1]&0xf0 == 16 {
		return true
	}
	if ip[0] == 192 && ip[1] == 168 {
		return true
	}
	if ip[0] == 169 && ip[1] == 254 {
		return true
	}
	if ip.IsLoopback() || ip.IsUnspecified() {
		return true
	}
	if ip.Equal(net.IPv4bcast) {
		return true
	}
	// 192.0.2.0/24, 198.51.100.0/24, 203.0.113.0/24: documentation ranges.
	if ip[0] == 192 && ip[1] == 0 && ip[2] == 2 {
		return true
	}
	if ip[0] == 198 && ip[1] == 51 && ip[2] == 100 {
		return true
	}
	if ip[0] == 203 && ip[1] == 0 && ip[2] == 113 {
		return true
	}
	return false
}

func isPrivateIPv6(ip net.IP) bool {
	if isFly6PN(ip) {
		return false
	}
	if ip.IsLoopback() || ip.IsUnspecified() || ip.IsMulticast() || ip.IsLinkLocalUnicast() {
		return true
	}
	if isUniqueLocal(ip) {
		return true
	}
	if isSiteLocal(ip) {
		return true
	}
	if v4 := ip.To4(); v4 != nil {
		return isPrivateIPv4(v4)
	}
	return false
}

// isFly6PN reports whether ip is in fdaa::/16, this deployment's private
// mesh network range; see the built-in (not configurable) exception noted
// above.
func isFly6PN(ip net.IP) bool {
	ip16 := ip.To16()
	return ip16 != nil && ip16[0] == 0xfd && ip16[1] == 0xaa
}

// isUniqueLocal reports fc00::/7.
func isUniqueLocal(ip net.IP) bool {
	ip16 := ip.To16()
	return ip16 != nil && ip16[0]&0xfe == 0xfc
}

// isSiteLocal reports the deprecated fec0::/10 site-local range.
func isSiteLocal(ip net.IP) bool {
	ip16 := ip.To16()
	return ip16 != nil && ip16[0] == 0xfe && ip16[1]&0xc0 == 0xc0
}

// lookupIPAddr resolves a hostname to its candidate addresses. It is a
// package-level var so tests can substitute a fixed resolution, the same
// way auditClock is swapped in audit tests.
var lookupIPAddr = net.DefaultResolver.LookupIPAddr

// validateResolvedAddrs re-checks every address a hostname resolves to,
// closing the DNS-rebinding hole that validating the hostname alone
// leaves open: an attacker-controlled name can resolve to a public IP at
// validation time and a private one by the time the connection is made,
// unless every resolved candidate is itself checked. A single private
// candidate among public ones is enough to refuse.
func validateResolvedAddrs(ctx context.Context, host string) error {
	addrs, err := lookupIPAddr(ctx, host)
	if err != nil {
		return toolerr.Wrap(toolerr.Network, err, "resolve host %s", redactString(host))
	}
	for _, a := range addrs {
		if isPrivateOrRestrictedIP(a.IP) {
			return toolerr.New(toolerr.Security, "access to private/restricted IP blocked")
		}
	}
	return nil
}

// newHTTPClient returns a client configured with timeout as its overall
// deadline and redirect-following disabled: a hop to a new location
// would bypass validateResolvedAddrs entirely, so the 3xx response is
// handed back to the caller instead of being chased. A package-level var
// so tests can route the dial to a local server.
var newHTTPClient = func(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

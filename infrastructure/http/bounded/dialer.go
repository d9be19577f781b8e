// ABOUTME: Connect-time address guard for outbound fetches
// ABOUTME: Refuses sockets to loopback, private, link-local and other non-public ranges

package bounded

import (
	"net"
	"net/netip"
	"syscall"

	"brandscout-api/core/errors"
)

var nonPublicPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"), // carrier-grade NAT
	netip.MustParsePrefix("192.0.0.0/24"),  // IETF protocol assignments
	netip.MustParsePrefix("198.18.0.0/15"), // benchmarking
	netip.MustParsePrefix("240.0.0.0/4"),   // reserved
	netip.MustParsePrefix("64:ff9b::/96"),  // NAT64
}

// IsPublicAddr reports whether ip is routable on the public internet
func IsPublicAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	if !ip.IsValid() ||
		ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() {
		return false
	}
	for _, p := range nonPublicPrefixes {
		if p.Contains(ip) {
			return false
		}
	}
	return true
}

// guardControl runs after DNS resolution and before connect, so it sees the
// address actually dialed, including every redirect hop.
func guardControl(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		host = address
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return &errors.BlockedAddressError{Address: host}
	}
	if !IsPublicAddr(ip) {
		return &errors.BlockedAddressError{Address: ip.String()}
	}
	return nil
}

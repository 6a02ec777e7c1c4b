package urlparse

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HostInfo describes the host component of a parsed URL.
type HostInfo struct {
	Hostname         string // host with any port and IPv6 brackets stripped
	Port             string
	IsIP             bool
	RegisteredDomain string // eTLD+1, empty for IPs and unlisted hosts
	PublicSuffix     string
	ICANN            bool // suffix comes from the ICANN section of the list
}

// HostDetails splits host:port and derives the registered domain and public
// suffix. Best effort: IP literals and single-label hosts like "localhost"
// simply have no registered domain.
func HostDetails(host string) HostInfo {
	info := HostInfo{Hostname: host}

	if h, p, err := net.SplitHostPort(host); err == nil {
		info.Hostname = h
		info.Port = p
	}
	// SplitHostPort only strips brackets when a port is present.
	info.Hostname = strings.TrimSuffix(strings.TrimPrefix(info.Hostname, "["), "]")

	if info.Hostname == "" {
		return info
	}
	if ip := net.ParseIP(info.Hostname); ip != nil {
		info.IsIP = true
		return info
	}

	name := strings.ToLower(strings.TrimSuffix(info.Hostname, "."))
	info.PublicSuffix, info.ICANN = publicsuffix.PublicSuffix(name)
	if d, err := publicsuffix.EffectiveTLDPlusOne(name); err == nil {
		info.RegisteredDomain = d
	}
	return info
}

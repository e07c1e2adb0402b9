package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/erraggy/langconf/internal/config"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/source"
)

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// newSafeHTTPClient creates an HTTP client that refuses to connect to
// private/loopback/link-local IPs. Used by the MCP server to prevent
// SSRF when AI agents supply URLs or documents whose extends point at URLs.
// The source.Loader follows redirects itself, so every hop is dialed
// through the same check.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{}

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
				if err != nil {
					return nil, err
				}
				if len(ips) == 0 {
					return nil, fmt.Errorf("no IP addresses found for host: %s", host)
				}
				for _, ipAddr := range ips {
					if isBlockedIP(ipAddr.IP) {
						return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, ipAddr.IP)
					}
				}
				// Dial the first resolved address.
				return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
			},
		},
	}
}

// newSafeLoader is cfg.NewLoader on top of newSafeHTTPClient.
func newSafeLoader(cfg *config.Config, logger parser.Logger) *source.Loader {
	return cfg.NewLoader(logger, source.WithHTTPClient(newSafeHTTPClient()))
}

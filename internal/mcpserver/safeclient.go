package mcpserver

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"
)

const maxRedirects = 10

var errBlockedAddress = errors.New("blocked request to private/loopback address")

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// httpClient returns the client used to fetch documents and Swagger 1.x API
// declarations. Private networks are only reachable when
// OASEXAMPLE_ALLOW_PRIVATE_IPS is set.
func httpClient() *http.Client {
	if cfg.AllowPrivateIPs {
		return &http.Client{Timeout: cfg.FetchTimeout}
	}
	return newSafeHTTPClient()
}

// newSafeHTTPClient returns a client that refuses to connect to private,
// loopback, or link-local addresses. The check runs on the resolved address
// of every connection, redirects included.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: guardDial}
	return &http.Client{
		Timeout: cfg.FetchTimeout,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// guardDial is a net.Dialer Control hook; address is always a resolved IP.
func guardDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%w: unresolved address %s", errBlockedAddress, host)
	}
	if isBlockedIP(ip) {
		return fmt.Errorf("%w: %s", errBlockedAddress, ip)
	}
	return nil
}

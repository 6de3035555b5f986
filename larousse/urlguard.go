package larousse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrForeignHost is returned when a request or redirect leaves the
	// host of Config.BaseURL.
	ErrForeignHost = errors.New("larousse: URL leaves the dictionary host")

	// ErrBlockedURL is returned when a host is, or resolves to, a private
	// or loopback address.
	ErrBlockedURL = errors.New("larousse: URL targets a private or loopback address")

	// ErrUnsafeScheme is returned for anything but http and https.
	ErrUnsafeScheme = errors.New("larousse: only http and https schemes are allowed")

	// ErrPageTooLarge is returned when a page exceeds Config.MaxBytes.
	ErrPageTooLarge = errors.New("larousse: page exceeds the size limit")
)

// hostPin restricts requests to the dictionary host. Redirects between
// http and https on that host are allowed; any other host is not.
type hostPin struct {
	host string // host[:port] of the base URL, lower-cased
}

func newHostPin(baseURL string) hostPin {
	u, err := url.Parse(baseURL)
	if err != nil {
		return hostPin{}
	}
	return hostPin{host: strings.ToLower(u.Host)}
}

func (p hostPin) check(u *url.URL) error {
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return ErrUnsafeScheme
	}
	if p.host == "" {
		return fmt.Errorf("%w: base URL has no host", ErrForeignHost)
	}
	if strings.ToLower(u.Host) != p.host {
		return fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
	}
	return nil
}

// ValidateURL is the default Config.URLValidator. It rejects hosts that
// are, or resolve to, loopback, private, link-local or unspecified
// addresses.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("larousse: invalid URL: %w", err)
	}
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return ErrUnsafeScheme
	}
	addrs, err := hostAddrs(u.Hostname())
	if err != nil {
		// Unresolvable now; the dial will report it.
		return nil
	}
	for _, a := range addrs {
		if inward(a) {
			return fmt.Errorf("%w: %s", ErrBlockedURL, a)
		}
	}
	return nil
}

func hostAddrs(host string) ([]netip.Addr, error) {
	if host == "" {
		return nil, errors.New("empty host")
	}
	if a, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{a}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
}

func inward(a netip.Addr) bool {
	a = a.Unmap()
	return a.IsLoopback() || a.IsPrivate() || a.IsUnspecified() ||
		a.IsLinkLocalUnicast() || a.IsLinkLocalMulticast()
}

// readPage reads a response body, failing with ErrPageTooLarge past max bytes.
func readPage(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	page, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N == 0 {
		return nil, fmt.Errorf("%w (%d bytes)", ErrPageTooLarge, max)
	}
	return page, nil
}

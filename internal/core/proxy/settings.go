package proxy

import (
	"fmt"
	"net/url"
)

// Settings contains outbound proxy configuration for courier API clients.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// Incomplete reports a proxy that was switched on without a usable address.
// Traffic then goes out directly, which usually deserves a warning.
func (p Settings) Incomplete() bool {
	return p.Enabled && !p.HasProxy()
}

// HostPort returns the proxy address without credentials (e.g., "http://proxy.local:3128").
func (p Settings) HostPort() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.Hostname, p.Port)
}

// URL returns the proxy URL with credentials attached, or nil when no proxy is configured.
func (p Settings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}
	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

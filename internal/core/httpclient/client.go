package httpclient

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipquickr/internal/core/logger"
	"shipquickr/internal/core/proxy"

	"go.uber.org/zap"
)

// sensitiveParams are query parameters masked before a URL reaches the logs.
var sensitiveParams = []string{"token", "password", "api_key", "apikey", "key", "secret"}

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Courier tags every entry so one provider's traffic can be filtered out.
	Courier string
}

func (lrt *LoggingRoundTripper) log() *zap.Logger {
	if lrt.Courier == "" {
		return logger.Get()
	}
	return logger.ForCourier(lrt.Courier)
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := lrt.log().With(
		zap.String("method", req.Method),
		zap.String("url", redactURL(req.URL)),
	)

	log.Debug("HTTP Request Started")

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Error("HTTP Request Failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn("HTTP Request Rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return resp, nil
	}

	log.Debug("HTTP Request Completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// redactURL masks userinfo and credential-bearing query parameters.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.RawQuery == "" {
		return u.Redacted()
	}

	q := u.Query()
	masked := false
	for name := range q {
		for _, s := range sensitiveParams {
			if strings.EqualFold(name, s) {
				q.Set(name, "xxxxx")
				masked = true
			}
		}
	}
	if !masked {
		return u.Redacted()
	}

	c := *u
	c.RawQuery = q.Encode()
	return c.Redacted()
}

// NewClient returns an http.Client with logging middleware.
// The timeout bounds the whole exchange, so one slow courier cannot hold a rate request open.
func NewClient(timeout time.Duration) *http.Client {
	return NewCourierClient("", timeout, proxy.Settings{})
}

// NewCourierClient is NewClient tagged with the courier name and routed through
// the given outbound proxy when one is configured.
func NewCourierClient(courier string, timeout time.Duration, settings proxy.Settings) *http.Client {
	var base http.RoundTripper = http.DefaultTransport

	if settings.Incomplete() {
		logger.Get().Warn("Outbound proxy enabled without host or port, sending directly",
			zap.String("courier", courier),
		)
	}

	if proxyURL := settings.URL(); proxyURL != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		base = transport
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: base,
			Courier: courier,
		},
		Timeout: timeout,
	}
}

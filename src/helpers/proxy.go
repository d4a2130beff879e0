package helpers

import (
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"token-scanner/src/logger"
)

// -----------------------------------------------------------------------------

type ProxyManager struct {
	proxies    []*url.URL
	userAgent  string
	userAgents []string
	index      int
	mu         sync.Mutex
	logger     *logger.Logger
}

// -----------------------------------------------------------------------------

// NewProxyManager keeps the valid entries of proxies. A non-empty userAgent is
// sent on every request; otherwise one of the built-in browser agents is used.
func NewProxyManager(proxies []string, userAgent string, log *logger.Logger) *ProxyManager {
	if log == nil {
		log = logger.NewLogger(nil, "ProxyManager")
	}

	var valid []*url.URL
	for _, p := range proxies {
		if !ValidateProxy(p) {
			log.Warning("Ignoring invalid proxy: %s", p)
			continue
		}
		u, err := url.Parse(FormatProxy(p))
		if err != nil {
			log.Warning("Ignoring invalid proxy: %s", p)
			continue
		}
		valid = append(valid, u)
	}

	return &ProxyManager{
		proxies:   valid,
		userAgent: strings.TrimSpace(userAgent),
		logger:    log,
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
		},
	}
}

// -----------------------------------------------------------------------------

// GetCurrentProxy returns the proxy in use with any password masked, or "" without proxies.
func (pm *ProxyManager) GetCurrentProxy() (string, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.proxies) == 0 {
		return "", nil
	}
	return pm.proxies[pm.index].Redacted(), nil
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) RotateProxy() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.proxies) <= 1 {
		return
	}

	pm.index = (pm.index + 1) % len(pm.proxies)
	pm.logger.Debug("Rotating proxy to: %s", pm.proxies[pm.index].Redacted())
}

// -----------------------------------------------------------------------------

// ProxyFunc is an http.Transport Proxy hook returning the current proxy.
// It returns nil when no proxies are configured. The network manager moves to
// the next proxy through RotateProxy after a transport failure.
func (pm *ProxyManager) ProxyFunc(_ *http.Request) (*url.URL, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.proxies) == 0 {
		return nil, nil
	}
	return pm.proxies[pm.index], nil
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) GetUserAgent() string {
	if pm.userAgent != "" {
		return pm.userAgent
	}
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if len(pm.userAgents) == 0 {
		return "Mozilla/5.0 (Go-http-client/1.1)"
	}
	return pm.userAgents[rand.Intn(len(pm.userAgents))]
}

// -----------------------------------------------------------------------------

func (pm *ProxyManager) HasProxies() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return len(pm.proxies) > 0
}

// -----------------------------------------------------------------------------

// ValidateProxy checks if a proxy string is roughly valid.
func ValidateProxy(proxyStr string) bool {
	if strings.TrimSpace(proxyStr) == "" {
		return false
	}
	u, err := url.Parse(FormatProxy(proxyStr))
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "socks5")
}

// -----------------------------------------------------------------------------

// FormatProxy ensures the proxy has a scheme.
func FormatProxy(proxyStr string) string {
	proxyStr = strings.TrimSpace(proxyStr)
	if !strings.Contains(proxyStr, "://") {
		return "http://" + proxyStr
	}
	return proxyStr
}

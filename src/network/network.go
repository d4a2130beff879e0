package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"token-scanner/src/helpers"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/models"
)

// maxBodyBytes is the largest upstream body accepted.
const maxBodyBytes = 1 << 20

type AsyncNetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Client       *http.Client
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncNetworkManager(cfg *models.MConfig, log *logger.Logger) *AsyncNetworkManager {
	nm := &AsyncNetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(cfg.Network.Proxies, cfg.Network.UserAgent, log.Named("ProxyManager")),
		Logger:       log,
	}
	nm.Client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) createClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if nm.ProxyManager.HasProxies() {
		transport.Proxy = nm.ProxyManager.ProxyFunc
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

// Get performs one GET request. Transport failures come back as NetworkError and
// non-200 answers as UpstreamError carrying the status code.
func (nm *AsyncNetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("invalid url %q", urlStr), err)
	}

	if len(params) > 0 {
		q := reqUrl.Query()
		for k, v := range params {
			q.Add(k, v)
		}
		reqUrl.RawQuery = q.Encode()
	}

	finalUrl := reqUrl.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalUrl, nil)
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("GET %s", finalUrl), err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())

	resp, err := nm.Client.Do(req)
	if err != nil {
		if nm.ProxyManager.HasProxies() && ctx.Err() == nil {
			current, _ := nm.ProxyManager.GetCurrentProxy()
			nm.Logger.Debug("Request via %s failed: %v", current, err)
			nm.ProxyManager.RotateProxy()
		} else {
			nm.Logger.Debug("Request failed: %v", err)
		}
		return nil, helpers.NewNetworkError(fmt.Sprintf("GET %s", finalUrl), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		nm.Logger.Debug("Bad status %d from %s", resp.StatusCode, reqUrl.Host)
		return nil, helpers.NewUpstreamError(reqUrl.Host, resp.StatusCode, fmt.Sprintf("bad status: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, helpers.NewNetworkError(fmt.Sprintf("reading body from %s", reqUrl.Host), err)
	}
	if len(body) > maxBodyBytes {
		return nil, helpers.NewUpstreamError(reqUrl.Host, 0, fmt.Sprintf("over %d bytes", maxBodyBytes), helpers.ErrBodyTooLarge)
	}

	return body, nil
}

// Package aur talks to the AUR RPC interface.
package aur

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fyntora/fyn/internal/models"
	"github.com/fyntora/fyn/internal/utils"
	"github.com/sirupsen/logrus"
)

// DefaultURL is the public AUR
const DefaultURL = "https://aur.archlinux.org"

const rpcPath = "/rpc/v5"

// Client issues read-only RPC calls against an AUR instance
type Client struct {
	baseURL   string
	userAgent string
	hClient   *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.hClient = h
	}
}

// WithTimeout bounds every request, zero disables the bound
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.hClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the AUR at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "fyn",
		hClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				TLSHandshakeTimeout: 10 * time.Second,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 2,
				DisableCompression:  true, // gzip is negotiated and decoded by do
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the source in logs
func (c *Client) Name() string {
	return "AUR"
}

// CloneURL returns the git URL of a package base
func (c *Client) CloneURL(base string) string {
	return c.baseURL + "/" + base + ".git"
}

// rpcResponse is the envelope of every RPC reply
type rpcResponse struct {
	Version     int          `json:"version"`
	Type        string       `json:"type"`
	ResultCount int          `json:"resultcount"`
	Results     []rpcPackage `json:"results"`
	Error       string       `json:"error"`
}

// rpcPackage holds the fields fyn reads; every one may be absent or null
type rpcPackage struct {
	Name        *string `json:"Name"`
	Version     *string `json:"Version"`
	Description *string `json:"Description"`
	PackageBase *string `json:"PackageBase"`
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// toPackage applies the defaults for absent fields
func (p rpcPackage) toPackage() models.Package {
	name := valueOr(p.Name, models.NotAvailable)
	return models.Package{
		Source:      models.SourceAUR,
		Repo:        "aur",
		Name:        name,
		Version:     valueOr(p.Version, models.NotAvailable),
		Description: valueOr(p.Description, models.NotAvailable),
		PackageBase: valueOr(p.PackageBase, name),
	}
}

// Search runs a name-desc search for query
func (c *Client) Search(ctx context.Context, query string) ([]models.Package, error) {
	resp, err := c.do(ctx, "/search/"+url.PathEscape(query))
	if err != nil {
		return nil, fmt.Errorf("AUR search for %q: %w", query, err)
	}

	packages := make([]models.Package, 0, len(resp.Results))
	for _, r := range resp.Results {
		packages = append(packages, r.toPackage())
	}

	logrus.Debugf("AUR returned %d package(s) for %q", len(packages), query)
	return packages, nil
}

// FetchBuildBase looks up the package base of name. It always returns a
// usable base: on any failure, or when the AUR has no such package, the base
// is name itself and the error (if any) says why.
func (c *Client) FetchBuildBase(ctx context.Context, name string) (string, error) {
	resp, err := c.do(ctx, "/info?arg[]="+url.QueryEscape(name))
	if err != nil {
		return name, fmt.Errorf("AUR info for %q: %w", name, err)
	}

	if len(resp.Results) == 0 {
		logrus.Debugf("AUR info has no result for %s, using the name as package base", name)
		return name, nil
	}

	base := valueOr(resp.Results[0].PackageBase, "")
	if base == "" {
		return name, nil
	}
	return base, nil
}

// do performs one GET against the RPC endpoint and decodes the envelope
func (c *Client) do(ctx context.Context, endpoint string) (*rpcResponse, error) {
	fullURL := c.baseURL + rpcPath + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	logrus.Debugf("GET %s", fullURL)
	resp, err := c.hClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := utils.GzipReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress response: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error replies are small, include them for the log
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return nil, fmt.Errorf("unexpected HTTP status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded rpcResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if decoded.Type == "error" {
		return nil, fmt.Errorf("RPC error: %s", decoded.Error)
	}

	return &decoded, nil
}

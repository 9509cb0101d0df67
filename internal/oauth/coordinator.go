package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/search5/openband/internal/secrets"
	"github.com/search5/openband/pkg/logging"
)

// Secret store keys used by the authorization flow.
const (
	KeyAuthorizationCode = "authorization_code"
	KeyAccessToken       = "access_token"
)

// DefaultAuthBaseURL is the BAND authorization server.
const DefaultAuthBaseURL = "https://auth.band.us"

// DefaultService is the secret store namestring when none is configured.
const DefaultService = "openband"

// Config configures the authorization coordinator.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURI is the redirect target registered with the developer
	// console. Defaults to http://localhost:8000.
	RedirectURI string

	// AuthBaseURL is the authorization server base URL. Defaults to
	// https://auth.band.us.
	AuthBaseURL string

	// Service is the secret store namestring. Defaults to "openband".
	Service string

	// ResponseType and GrantType default to the OAuth2 literals "code" and
	// "authorization_code". Any other non-empty value is rejected with a
	// ConfigurationError before a request is issued.
	ResponseType string
	GrantType    string
}

// Coordinator drives the three-step authorization-code exchange: build the
// consent URL, capture the redirect through a one-shot local listener, and
// exchange the captured code for an access token.
type Coordinator struct {
	cfg         Config
	store       secrets.Store
	httpClient  *http.Client
	openBrowser func(string) error
}

// CoordinatorOption configures the coordinator.
type CoordinatorOption func(*Coordinator)

// WithHTTPClient sets a custom HTTP client for the token exchange.
func WithHTTPClient(httpClient *http.Client) CoordinatorOption {
	return func(c *Coordinator) {
		c.httpClient = httpClient
	}
}

// WithBrowserOpener replaces the browser launcher. Used by tests to drive
// the redirect without a real user agent.
func WithBrowserOpener(open func(string) error) CoordinatorOption {
	return func(c *Coordinator) {
		c.openBrowser = open
	}
}

// NewCoordinator creates a coordinator backed by the given secret store.
func NewCoordinator(cfg Config, store secrets.Store, opts ...CoordinatorOption) *Coordinator {
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultAuthBaseURL
	}
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	if cfg.ResponseType == "" {
		cfg.ResponseType = ResponseTypeCode
	}
	if cfg.GrantType == "" {
		cfg.GrantType = GrantTypeAuthorizationCode
	}

	c := &Coordinator{
		cfg:         cfg,
		store:       store,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		openBrowser: OpenBrowser,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureAccessToken returns the cached access token, or runs the full
// authorization flow to obtain one. A cached token is returned unchanged
// with zero network or browser interaction.
//
// The wait for the browser redirect is unbounded unless ctx carries a
// deadline; context expiry surfaces as an AuthorizationError. Cached tokens
// are never expired or refreshed -- the upstream flow models no lifetime,
// and a stale token simply fails at the first API call.
func (c *Coordinator) EnsureAccessToken(ctx context.Context) (string, error) {
	if token, err := c.store.Get(c.cfg.Service, KeyAccessToken); err == nil {
		logging.Debug("Auth", "using cached access token for service %s", c.cfg.Service)
		return token, nil
	} else if !errors.Is(err, secrets.ErrNotFound) {
		return "", fmt.Errorf("failed to read cached token: %w", err)
	}

	req := &AuthorizeRequest{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURI:  c.cfg.RedirectURI,
		ResponseType: c.cfg.ResponseType,
		GrantType:    c.cfg.GrantType,
	}

	authURL, err := req.AuthorizeURL(c.cfg.AuthBaseURL)
	if err != nil {
		return "", err
	}

	// Validate the grant type up front as well, so a bad configuration
	// fails before the user is sent to the consent page.
	if _, err := req.TokenURL(c.cfg.AuthBaseURL, "-"); err != nil {
		return "", err
	}

	code, err := c.captureCode(ctx, authURL)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(c.cfg.Service, KeyAuthorizationCode, code); err != nil {
		return "", fmt.Errorf("failed to persist authorization code: %w", err)
	}

	token, err := c.Exchange(ctx, req, code)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(c.cfg.Service, KeyAccessToken, token.AccessToken); err != nil {
		return "", fmt.Errorf("failed to persist access token: %w", err)
	}

	logging.Info("Auth", "access token obtained for service %s", c.cfg.Service)
	return token.AccessToken, nil
}

// captureCode opens the consent page and blocks on the one-shot redirect
// listener until the authorization code arrives. The listener is started
// before the browser so the redirect cannot race the bind.
func (c *Coordinator) captureCode(ctx context.Context, authURL string) (string, error) {
	server, err := NewCallbackServer(c.cfg.RedirectURI)
	if err != nil {
		return "", err
	}
	if err := server.Start(ctx); err != nil {
		return "", err
	}
	defer server.Stop()

	if err := c.openBrowser(authURL); err != nil {
		// Not fatal: the user can still open the URL by hand.
		logging.Warn("Auth", "could not open browser: %v", err)
		logging.Info("Auth", "open this URL to continue: %s", authURL)
	}

	logging.Debug("Auth", "waiting for redirect on %s", server.Addr())
	result, err := server.WaitForCallback(ctx)
	if err != nil {
		return "", &AuthorizationError{Message: "authorization redirect not received", Err: err}
	}
	if result.IsError() {
		return "", &AuthorizationError{
			Message: fmt.Sprintf("authorization denied: %s (%s)", result.Error, result.ErrorDescription),
		}
	}
	if result.Code == "" {
		return "", &AuthorizationError{Message: "authorization redirect carried no code"}
	}
	return result.Code, nil
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	UserKey      string `json:"user_key"`
}

// Exchange trades an authorization code for an access token using HTTP
// Basic authentication with the client credentials.
//
// A non-200 status is terminal; the failure body is not assumed to be
// well-formed JSON and is not decoded.
func (c *Coordinator) Exchange(ctx context.Context, req *AuthorizeRequest, code string) (*oauth2.Token, error) {
	tokenURL, err := req.TokenURL(c.cfg.AuthBaseURL, code)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	httpReq.SetBasicAuth(req.ClientID, req.ClientSecret)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &AuthorizationError{Message: "token request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthorizationError{Message: "failed to read token response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logging.Debug("Auth", "token exchange failed: status=%d", resp.StatusCode)
		return nil, &AuthorizationError{Status: resp.StatusCode, Message: "token exchange failed"}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &AuthorizationError{Message: "failed to parse token response", Err: err}
	}
	if tr.AccessToken == "" {
		return nil, &AuthorizationError{Message: "token response carried no access_token"}
	}

	token := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	logging.Debug("Auth", "token exchange succeeded (expires_in=%d)", tr.ExpiresIn)
	return token, nil
}

// ClearToken drops the cached access token and authorization code, forcing
// the next EnsureAccessToken call to rerun the flow.
func (c *Coordinator) ClearToken() error {
	if err := c.store.Delete(c.cfg.Service, KeyAccessToken); err != nil {
		return err
	}
	return c.store.Delete(c.cfg.Service, KeyAuthorizationCode)
}

// HasToken reports whether a cached access token exists.
func (c *Coordinator) HasToken() bool {
	_, err := c.store.Get(c.cfg.Service, KeyAccessToken)
	return err == nil
}

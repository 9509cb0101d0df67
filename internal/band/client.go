package band

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/search5/openband/internal/oauth"
	"github.com/search5/openband/internal/secrets"
	"github.com/search5/openband/pkg/logging"
)

// DefaultAPIBaseURL is the BAND Open API host.
const DefaultAPIBaseURL = "https://openapi.band.us"

// DefaultLocale is sent with listing requests when none is configured.
const DefaultLocale = "en_US"

// Client issues authenticated calls against the BAND Open API. Every public
// operation performs at most one network round trip and propagates the first
// failure to the caller; there are no retries.
//
// The access token is read from the secret store on each call, so a token
// obtained by the authorization flow in the same or an earlier process is
// picked up without reconstructing the client.
type Client struct {
	apiBase    string
	service    string
	locale     string
	store      secrets.Store
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIBaseURL overrides the API host. Used by tests.
func WithAPIBaseURL(base string) Option {
	return func(c *Client) {
		c.apiBase = base
	}
}

// WithLocale sets the locale sent with listing requests.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithService sets the secret store namestring the token is read from.
func WithService(service string) Option {
	return func(c *Client) {
		c.service = service
	}
}

// NewClient creates a client reading its access token from the given store.
func NewClient(store secrets.Store, opts ...Option) *Client {
	c := &Client{
		apiBase:    DefaultAPIBaseURL,
		service:    oauth.DefaultService,
		locale:     DefaultLocale,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// accessToken reads the cached token; its absence is a local error, not a
// network failure.
func (c *Client) accessToken() (string, error) {
	token, err := c.store.Get(c.service, oauth.KeyAccessToken)
	if err != nil {
		return "", ErrNoAccessToken
	}
	return token, nil
}

// call performs one round trip and returns the decoded envelope, after
// verifying the business-level result code. All parameters travel in the
// query string; the API takes no request bodies.
func (c *Client) call(ctx context.Context, method, path string, params url.Values) (*Envelope, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", token)

	endpoint := c.apiBase + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logging.Debug("Band", "%s %s", method, c.apiBase+path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	env, err := ParseResponse(resp)
	if err != nil {
		return nil, err
	}
	if env.ResultCode != ResultCodeOK {
		return nil, envelopeError(env)
	}
	return env, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	return c.call(ctx, http.MethodGet, path, params)
}

func (c *Client) post(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	return c.call(ctx, http.MethodPost, path, params)
}

// decodeResultData unmarshals the envelope's result_data into dst.
func decodeResultData(env *Envelope, dst any) error {
	if len(env.ResultData) == 0 {
		return &APIError{ResultCode: env.ResultCode, Message: "response carried no result_data"}
	}
	if err := json.Unmarshal(env.ResultData, dst); err != nil {
		return &APIError{ResultCode: env.ResultCode, Message: "malformed result_data"}
	}
	return nil
}

// Profile fetches the calling user's profile. A non-empty bandKey scopes
// the profile to that band, adding the join timestamp.
func (c *Client) Profile(ctx context.Context, bandKey string) (*Profile, error) {
	params := url.Values{}
	if bandKey != "" {
		params.Set("band_key", bandKey)
	}

	env, err := c.get(ctx, "/v2/profile", params)
	if err != nil {
		return nil, err
	}

	var data profileJSON
	if err := decodeResultData(env, &data); err != nil {
		return nil, err
	}
	return newProfile(data), nil
}

// Bands lists the bands the user belongs to. The endpoint is not paginated.
func (c *Client) Bands(ctx context.Context) ([]*Band, error) {
	env, err := c.get(ctx, "/v2.1/bands", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Bands []bandJSON `json:"bands"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, err
	}

	bands := make([]*Band, 0, len(data.Bands))
	for _, bj := range data.Bands {
		bands = append(bands, newBand(bj))
	}
	return bands, nil
}

// FindBand looks up a band by key among the user's bands.
func (c *Client) FindBand(ctx context.Context, bandKey string) (*Band, error) {
	bands, err := c.Bands(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bands {
		if b.Key == bandKey {
			return b, nil
		}
	}
	return nil, fmt.Errorf("band %s not found", bandKey)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const maxBodySize = 4 << 20

// Client talks to the news backend. All endpoints live under one base
// path, e.g. http://localhost:8000/api/v1.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	retries uint64
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = &bearerTransport{base: base, token: token}
	}
}

// WithLogger enables request debug logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRetries sets how many times idempotent requests are retried
// after a transport failure.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zerolog.Nop(),
		retries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// bearerTransport adds the Authorization header to every request
// without mutating the caller's request.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

// Login exchanges credentials for an identity with a fresh token.
func (c *Client) Login(ctx context.Context, userID, password string) (*Identity, error) {
	body, err := c.post(ctx, "/users/login", map[string]string{
		"user_id":  userID,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &id, nil
}

// Register creates an account. The response body is ignored; the
// caller signs in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.post(ctx, "/users/register", req)
	return err
}

// NewsByTopic fetches one page of the free-text topic feed.
func (c *Client) NewsByTopic(ctx context.Context, topic string, page, pageSize int) (*FeedPage, error) {
	body, err := c.get(ctx, "/news/"+url.PathEscape(topic), pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, err
	}
	return decodeFeedPage(body)
}

// HeadlinesByCategory fetches one page of the category headline feed.
func (c *Client) HeadlinesByCategory(ctx context.Context, category string, page, pageSize int) (*FeedPage, error) {
	body, err := c.get(ctx, "/headlines/"+url.PathEscape(category), pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, err
	}
	return decodeFeedPage(body)
}

// Recommendations fetches the blended feed for a user.
func (c *Client) Recommendations(ctx context.Context, userID string) (*RecommendationSet, error) {
	body, err := c.get(ctx, "/recommendations/recommend/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecommendations(body)
}

// SendInteraction records one interaction event. Never retried: the
// endpoint is not idempotent.
func (c *Client) SendInteraction(ctx context.Context, ev Interaction) error {
	_, err := c.post(ctx, "/interactions/add", ev)
	return err
}

// SavedArticles fetches everything the user has saved.
func (c *Client) SavedArticles(ctx context.Context, userID string) ([]Article, error) {
	body, err := c.get(ctx, "/interactions/saved/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out.Articles, nil
}

// AdminUsers returns the raw user records exposed by the admin routes.
func (c *Client) AdminUsers(ctx context.Context, adminKey string) ([]map[string]any, error) {
	return c.adminList(ctx, "/admin/users", adminKey)
}

// AdminInteractions returns the raw interaction records.
func (c *Client) AdminInteractions(ctx context.Context, adminKey string) ([]map[string]any, error) {
	return c.adminList(ctx, "/admin/interactions", adminKey)
}

// AdminProfiles returns the raw personalization profiles.
func (c *Client) AdminProfiles(ctx context.Context, adminKey string) ([]map[string]any, error) {
	return c.adminList(ctx, "/admin/profiles", adminKey)
}

// AdminCacheKeys returns the backend's cached feed keys.
func (c *Client) AdminCacheKeys(ctx context.Context, adminKey string) ([]string, error) {
	body, err := c.get(ctx, "/admin/cache/keys", nil, adminHeader(adminKey))
	if err != nil {
		return nil, err
	}
	var out struct {
		CachedKeys []string `json:"cached_keys"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out.CachedKeys, nil
}

func (c *Client) adminList(ctx context.Context, path, adminKey string) ([]map[string]any, error) {
	body, err := c.get(ctx, path, nil, adminHeader(adminKey))
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out, nil
}

func adminHeader(adminKey string) http.Header {
	h := make(http.Header)
	h.Set("admin_key", adminKey)
	return h
}

func pageQuery(page, pageSize int) url.Values {
	return url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
}

// get retries transport failures with exponential backoff; HTTP status
// errors are permanent.
func (c *Client) get(ctx context.Context, path string, query url.Values, header http.Header) ([]byte, error) {
	op := func() ([]byte, error) {
		body, err := c.do(ctx, http.MethodGet, path, query, header, nil)
		if err != nil {
			if StatusOf(err) != 0 {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return body, nil
	}
	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx))
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, nil, payload)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, header http.Header, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s body: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Detail: decodeDetail(body)}
	}
	return body, nil
}

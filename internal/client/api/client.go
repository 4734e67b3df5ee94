// Package api is the record store adapter: a JSON-over-HTTP client for the
// rolodex server's contacts, companies and auth endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rolodex/rolodex/internal/model"
)

const defaultTimeout = 30 * time.Second

// Error is returned for every non-2xx response. Message is the server's
// human-readable text and is what the user sees.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to one rolodex server. The bearer token is swapped in and out
// as the user signs in and out; Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ---------------------------------------------------------------------------
// contacts
// ---------------------------------------------------------------------------

// ListContacts fetches all of the user's contacts.
func (c *Client) ListContacts(ctx context.Context, opts model.ListOptions) ([]model.Contact, error) {
	var out []model.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts", listQuery(opts), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertContact creates a contact and returns the stored row.
func (c *Client) InsertContact(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	var out model.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContact overwrites every writable field of contact id.
func (c *Client) UpdateContact(ctx context.Context, id string, in model.ContactInput) (*model.Contact, error) {
	var out model.Contact
	if err := c.do(ctx, http.MethodPut, "/api/contacts/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes contact id.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), nil, nil, nil)
}

// ---------------------------------------------------------------------------
// companies
// ---------------------------------------------------------------------------

// ListCompanies fetches all of the user's companies.
func (c *Client) ListCompanies(ctx context.Context, opts model.ListOptions) ([]model.Company, error) {
	var out []model.Company
	if err := c.do(ctx, http.MethodGet, "/api/companies", listQuery(opts), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertCompany creates a company and returns the stored row.
func (c *Client) InsertCompany(ctx context.Context, in model.CompanyInput) (*model.Company, error) {
	var out model.Company
	if err := c.do(ctx, http.MethodPost, "/api/companies", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCompany removes company id. The server clears the company reference
// of its contacts.
func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/companies/"+url.PathEscape(id), nil, nil, nil)
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

// SignUp creates an account and returns its first session.
func (c *Client) SignUp(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	var out model.AuthSession
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	var out model.AuthSession
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut revokes the current token on the server.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil, nil)
}

// CurrentUser returns the account behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("session response has no user")
	}
	return out.User, nil
}

// ---------------------------------------------------------------------------
// transport
// ---------------------------------------------------------------------------

// listQuery renders opts as order=<col>.<asc|desc>&embed=company.
func listQuery(opts model.ListOptions) url.Values {
	q := url.Values{}
	if opts.OrderBy != "" {
		dir := "asc"
		if opts.Descending {
			dir = "desc"
		}
		q.Set("order", opts.OrderBy+"."+dir)
	}
	if opts.WithCompany {
		q.Set("embed", "company")
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &payload); err == nil {
		apiErr.Code = payload.Error
		apiErr.Message = payload.Message
	} else if text := strings.TrimSpace(string(b)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

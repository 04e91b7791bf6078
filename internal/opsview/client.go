package opsview

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	resty "github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 20 * time.Second
	loginPath      = "/rest/login"
	userAgent      = "opsview-inventory/1.0"

	headerUsername = "X-Opsview-Username"
	headerToken    = "X-Opsview-Token"
)

type Options struct {
	URL                string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Logger             *zap.Logger
}

// Client talks to the Opsview REST API. The underlying resty client keeps a
// cookie jar, so cookies set by the login call ride along on later requests.
type Client struct {
	rest *resty.Client
	log  *zap.Logger
}

type APIError struct {
	StatusCode int
	Path       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusUnauthorized {
		return "opsview authentication failed"
	}
	if e.StatusCode == http.StatusForbidden {
		return "opsview authorization failed"
	}
	if e.StatusCode >= 400 {
		return fmt.Sprintf("opsview API error (status %d) for %s", e.StatusCode, e.Path)
	}
	return fmt.Sprintf("opsview API error for %s: %v", e.Path, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AuthError reports a login response that did not yield a token.
type AuthError struct {
	Reason string
	Body   string
}

func (e *AuthError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("opsview authentication failed: %s: %s", e.Reason, e.Body)
	}
	return fmt.Sprintf("opsview authentication failed: %s", e.Reason)
}

func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("opsview URL is required")
	}
	parsed, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid opsview URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid opsview URL: %s", opts.URL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rest := resty.New()
	rest.SetBaseURL(strings.TrimSuffix(opts.URL, "/"))
	rest.SetTimeout(timeout)
	rest.SetHeader("User-Agent", userAgent)
	rest.SetLogger(log.Sugar())
	if opts.InsecureSkipVerify {
		rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return &Client{rest: rest, log: log.Named("opsview")}, nil
}

// Login exchanges the credentials for an API token. The response must be a
// JSON object with a non-empty "token" field.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	res, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post(loginPath)
	if err != nil {
		return nil, errors.Wrap(err, "opsview login request")
	}
	if res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden {
		return nil, &AuthError{Reason: fmt.Sprintf("status %d", res.StatusCode())}
	}
	if res.IsError() {
		return nil, &APIError{StatusCode: res.StatusCode(), Path: loginPath, Err: fmt.Errorf("status %d", res.StatusCode())}
	}

	body := res.Body()
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil, &AuthError{Reason: "empty login response"}
	}
	if !gjson.Valid(text) {
		return nil, &AuthError{Reason: "cannot parse login response", Body: text}
	}
	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return nil, &AuthError{Reason: "cannot parse login response", Body: text}
	}
	if len(parsed.Map()) == 0 {
		return nil, &AuthError{Reason: "empty login response"}
	}
	token := parsed.Get("token")
	if !token.Exists() || token.String() == "" {
		return nil, &AuthError{Reason: "login response has no token"}
	}

	c.log.Debug("logged in", zap.String("username", username))
	return &Session{client: c, username: username, token: token.String()}, nil
}

// Session holds the token of a successful login. It is read-only after
// creation and safe for concurrent use.
type Session struct {
	client   *Client
	username string
	token    string
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) Username() string {
	return s.username
}

func (s *Session) get(ctx context.Context, target string) ([]byte, error) {
	res, err := s.client.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(headerUsername, s.username).
		SetHeader(headerToken, s.token).
		Get(target)
	if err != nil {
		return nil, errors.Wrapf(err, "opsview request %s", target)
	}
	if res.IsError() {
		return nil, &APIError{StatusCode: res.StatusCode(), Path: target, Err: fmt.Errorf("status %d", res.StatusCode())}
	}
	body := res.Body()
	if !gjson.ValidBytes(body) {
		return nil, &APIError{StatusCode: res.StatusCode(), Path: target, Err: fmt.Errorf("response is not valid JSON")}
	}
	return body, nil
}

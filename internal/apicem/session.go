// Package apicem is a minimal client for the APIC-EM controller REST API.
// A Session logs in once to obtain a service ticket and sends it on every
// subsequent request.
package apicem

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	TicketPath = "/api/v1/ticket"

	// DefaultScope is sent when Get is called without a scope.
	DefaultScope = "ALL"

	headerToken = "X-Auth-Token"
	headerScope = "scope"
)

// Session is an authenticated conversation with one controller.
type Session struct {
	cfg     config.Controller
	client  *http.Client
	log     zerolog.Logger
	ticket  string
	version string
}

// NewSession creates a session for the given controller. No request is
// sent until Login.
func NewSession(cfg config.Controller, logger zerolog.Logger) *Session {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Insecure {
		client.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // user-configured
		}
	}
	return &Session{
		cfg:     cfg,
		client:  client,
		log:     logger.With().Str("controller", cfg.Host).Logger(),
		version: "1.0",
	}
}

// Version is the API version reported by the last successful login.
func (s *Session) Version() string {
	return s.version
}

// Authenticated reports whether the session holds a service ticket.
func (s *Session) Authenticated() bool {
	return s.ticket != ""
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges the configured credentials for a service ticket.
// It returns the HTTP status code and the parsed response body.
func (s *Session) Login(ctx context.Context) (int, gjson.Result, error) {
	payload, err := json.Marshal(credentials{Username: s.cfg.Username, Password: s.cfg.Password})
	if err != nil {
		return 0, gjson.Result{}, fmt.Errorf("encoding credentials: %w", err)
	}

	url := s.cfg.BaseURL() + TicketPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, gjson.Result{}, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := s.do(req)
	if err != nil {
		return 0, gjson.Result{}, err
	}

	if !gjson.ValidBytes(body) {
		return status, gjson.Result{}, &AuthenticationError{
			Reason: fmt.Sprintf("controller returned %d with a non-JSON body", status),
		}
	}

	content := gjson.ParseBytes(body)
	version := content.Get("version")
	ticket := content.Get("response.serviceTicket")
	if !version.Exists() || version.Type == gjson.Null || ticket.String() == "" {
		return status, content, &AuthenticationError{Reason: loginFailureReason(status, content)}
	}

	s.version = version.String()
	s.ticket = ticket.String()
	s.log.Debug().Int("status", status).Str("version", s.version).Msg("logged in")

	return status, content, nil
}

// Get issues an authenticated GET and returns the status code together
// with the "response" field of the body. An empty scope means DefaultScope.
func (s *Session) Get(ctx context.Context, path, scope string) (int, gjson.Result, error) {
	if s.ticket == "" {
		return 0, gjson.Result{}, &AuthenticationError{Reason: "no service ticket, login first"}
	}
	if scope == "" {
		scope = DefaultScope
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	url := s.cfg.BaseURL() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, gjson.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(headerToken, s.ticket)
	req.Header.Set(headerScope, scope)

	status, body, err := s.do(req)
	if err != nil {
		return 0, gjson.Result{}, err
	}

	if !gjson.ValidBytes(body) {
		return status, gjson.Result{}, &RequestError{Path: path, StatusCode: status, Reason: "body is not JSON"}
	}
	response := gjson.GetBytes(body, "response")
	if !response.Exists() {
		return status, gjson.Result{}, &RequestError{Path: path, StatusCode: status, Reason: `missing "response" field`}
	}

	s.log.Debug().Str("path", path).Int("status", status).Msg("query done")
	return status, response, nil
}

// Logoff ends the session. APIC-EM has no documented logoff endpoint, so
// the ticket is only forgotten locally and left to expire on the controller.
func (s *Session) Logoff(ctx context.Context) error {
	if s.ticket == "" {
		return nil
	}
	s.ticket = ""
	s.log.Debug().Msg("logged off")
	return nil
}

func (s *Session) do(req *http.Request) (int, []byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, &ConnectionError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &ConnectionError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	return resp.StatusCode, body, nil
}

func loginFailureReason(status int, content gjson.Result) string {
	for _, path := range []string{"response.message", "response.detail", "response.errorCode"} {
		if msg := content.Get(path).String(); msg != "" {
			return fmt.Sprintf("controller returned %d: %s", status, msg)
		}
	}
	return fmt.Sprintf("controller returned %d without a service ticket", status)
}

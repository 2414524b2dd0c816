// Package apicemtest provides an in-process fake APIC-EM controller for tests.
package apicemtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/ThomasCrouzet/apicem-inventory/internal/config"
)

const (
	Username = "admin"
	Password = "password"
	Ticket   = "ST-1234-fake-ticket"
)

// Request is a request seen by the fake controller.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Controller serves canned APIC-EM responses.
type Controller struct {
	Server *httptest.Server

	// Routes maps a path to the raw JSON body returned for it. The login
	// path is handled separately unless overridden here.
	Routes map[string]string

	// Status overrides the status code per path.
	Status map[string]int

	mu       sync.Mutex
	requests []Request
}

// NewController starts a fake controller. It is closed when the test ends.
func NewController(t *testing.T) *Controller {
	t.Helper()
	c := &Controller{
		Routes: make(map[string]string),
		Status: make(map[string]int),
	}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serve))
	t.Cleanup(c.Server.Close)
	return c
}

// NewTLSController is NewController over HTTPS with a self-signed certificate.
func NewTLSController(t *testing.T) *Controller {
	t.Helper()
	c := &Controller{
		Routes: make(map[string]string),
		Status: make(map[string]int),
	}
	c.Server = httptest.NewTLSServer(http.HandlerFunc(c.serve))
	t.Cleanup(c.Server.Close)
	return c
}

// Config returns controller settings pointing at the fake.
func (c *Controller) Config() config.Controller {
	u, _ := url.Parse(c.Server.URL)
	return config.Controller{
		Host:     u.Host,
		Scheme:   u.Scheme,
		Username: Username,
		Password: Password,
	}
}

// RouteFile serves the contents of a fixture file for path.
func (c *Controller) RouteFile(t *testing.T, path, file string) {
	t.Helper()
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", file, err)
	}
	c.Routes[path] = string(data)
}

// Requests returns every request received so far.
func (c *Controller) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Request(nil), c.requests...)
}

// RequestsTo returns the requests received for path.
func (c *Controller) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range c.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (c *Controller) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	c.mu.Lock()
	c.requests = append(c.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if raw, ok := c.Routes[r.URL.Path]; ok {
		w.WriteHeader(c.statusFor(r.URL.Path, http.StatusOK))
		_, _ = w.Write([]byte(raw))
		return
	}

	if r.URL.Path == "/api/v1/ticket" && r.Method == http.MethodPost {
		c.login(w, body)
		return
	}

	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"response":{"errorCode":"NOT_FOUND","message":"no such resource"},"version":"1.0"}`))
}

func (c *Controller) login(w http.ResponseWriter, body []byte) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &creds); err != nil || creds.Username != Username || creds.Password != Password {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"response":{"errorCode":"RBAC","message":"Invalid credentials"},"version":"1.0"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"response":{"serviceTicket":"` + Ticket + `","idleTimeout":1800,"sessionTimeout":21600},"version":"1.0"}`))
}

func (c *Controller) statusFor(path string, fallback int) int {
	if s, ok := c.Status[path]; ok {
		return s
	}
	return fallback
}

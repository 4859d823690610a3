// Package apitest runs an in-process stand-in for the ciber backend so the
// client can be exercised over real HTTP.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	signingSecret = "apitest-signing-secret"
	userIDKey     = "user_id"
)

// Account is a registered user. Role is upper-case like the real backend.
type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	password  string
}

// Request is a recorded inbound call.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	RequestID     string
}

type Backend struct {
	Echo   *echo.Echo
	Server *httptest.Server

	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]*Account
	projects   map[int64]map[string]any
	advisories map[int64]map[string]any
	schedules  map[int64]map[string]any
	profiles   map[int64]map[string]any
	uploads    map[string][]byte
	requests   []Request
	lastToken  string
	failStatus int
}

// New starts a backend that is shut down when t finishes.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		Echo:       echo.New(),
		nextID:     100,
		accounts:   map[int64]*Account{},
		projects:   map[int64]map[string]any{},
		advisories: map[int64]map[string]any{},
		schedules:  map[int64]map[string]any{},
		profiles:   map[int64]map[string]any{},
		uploads:    map[string][]byte{},
	}
	b.Echo.HideBanner = true
	b.Echo.HidePort = true
	b.Echo.Use(b.record, b.failing, b.authenticate)
	b.routes()

	b.Server = httptest.NewServer(b.Echo)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// Fail makes every subsequent request answer with status.
func (b *Backend) Fail(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

// Requests returns the calls received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent call.
func (b *Backend) LastRequest() Request {
	reqs := b.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

// AddAccount registers an account directly and returns it.
func (b *Backend) AddAccount(name, email, password, role string) *Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addAccountLocked(name, email, password, role)
}

func (b *Backend) addAccountLocked(name, email, password, role string) *Account {
	id := b.newIDLocked()
	now := time.Now().UTC().Format(time.RFC3339)
	acct := &Account{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      strings.ToUpper(role),
		CreatedAt: now,
		UpdatedAt: now,
		password:  password,
	}
	b.accounts[id] = acct
	return acct
}

// Account returns the stored account with id.
func (b *Backend) Account(id int64) (*Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accounts[id]
	if !ok {
		return nil, false
	}
	copied := *acct
	return &copied, true
}

// Upload returns the bytes of an uploaded image by its served URL.
func (b *Backend) Upload(imageURL string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.uploads[imageURL]
	return data, ok
}

// LastToken returns the token handed out by the latest login or register.
func (b *Backend) LastToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastToken
}

// TokenFor issues a signed bearer token for id.
func (b *Backend) TokenFor(id int64, role string) string {
	now := time.Now()
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(id, 10),
		"role": strings.ToUpper(role),
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}).SignedString([]byte(signingSecret))
	return token
}

func (b *Backend) newIDLocked() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			Authorization: req.Header.Get(echo.HeaderAuthorization),
			ContentType:   req.Header.Get(echo.HeaderContentType),
			RequestID:     req.Header.Get(echo.HeaderXRequestID),
		})
		b.mu.Unlock()
		return next(c)
	}
}

func (b *Backend) failing(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		status := b.failStatus
		b.mu.Unlock()
		if status != 0 {
			return c.JSON(status, map[string]string{"message": "simulated failure"})
		}
		return next(c)
	}
}

// authenticate resolves the bearer token when present; routes decide
// whether they need it.
func (b *Backend) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "malformed authorization header"})
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(signingSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
		}

		sub, _ := claims.GetSubject()
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid subject"})
		}
		c.Set(userIDKey, id)
		return next(c)
	}
}

func requireUser(c echo.Context) (int64, error) {
	id, ok := c.Get(userIDKey).(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

func (b *Backend) requireAdmin(c echo.Context) error {
	id, err := requireUser(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if acct, ok := b.accounts[id]; !ok || acct.Role != "ADMIN" {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}
	return nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func int64Field(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// sorted returns the records of m ordered by id, filtered by keep.
func sorted(m map[int64]map[string]any, keep func(map[string]any) bool) []map[string]any {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []map[string]any{}
	for _, id := range ids {
		if keep == nil || keep(m[id]) {
			out = append(out, m[id])
		}
	}
	return out
}

func (b *Backend) storeUpload(c echo.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	url := "/uploads/" + uuid.NewString() + "-" + file.Filename
	b.mu.Lock()
	b.uploads[url] = data
	b.mu.Unlock()
	return url, nil
}

// Package edupage implements the Session capability against the Edupage
// web application. There is no official API: the client logs in the way a
// browser does and reads the JSON blobs the web UI embeds in its pages.
package edupage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36"
	requestTimeout = 30 * time.Second
)

var (
	reCSRF     = regexp.MustCompile(`csrfauth"\s*:\s*"([^"]+)"`)
	reUserhome = regexp.MustCompile(`(?s)\.userhome\((.+?)\);`)
	reGsecHash = regexp.MustCompile(`gsechash"\s*:\s*"(\w+)"`)
)

// Client is an authenticated handle to one school. It implements
// schema.Session. Safe for concurrent use: the embedded login state is
// replaced wholesale under mu on every refresh, and readers take a
// snapshot. The snapshot maps themselves are never mutated in place.
type Client struct {
	httpClient *http.Client
	subdomain  string
	baseURL    string

	mu       sync.RWMutex
	gsecHash string
	userID   int
	userRow  map[string]any
	dbi      map[string]any
	items    []map[string]any
	ringing  []map[string]any
}

var _ schema.Session = (*Client)(nil)

// Login authenticates against a school's Edupage instance and returns a
// live session. Wrong credentials and CAPTCHA walls come back as typed
// errors the caller can branch on.
func Login(ctx context.Context, subdomain, username, password string) (*Client, error) {
	if subdomain == "" {
		return nil, result.Errorf(result.KindInvalidQuery, "empty school subdomain")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		httpClient: &http.Client{Jar: jar, Timeout: requestTimeout},
		subdomain:  subdomain,
		baseURL:    fmt.Sprintf("https://%s.edupage.org", subdomain),
	}

	loginPage, err := c.get(ctx, "/login/index.php")
	if err != nil {
		return nil, fmt.Errorf("fetch login page: %w", err)
	}
	m := reCSRF.FindSubmatch(loginPage)
	if m == nil {
		return nil, fmt.Errorf("no csrf token on %s login page", subdomain)
	}

	form := url.Values{
		"username": {username},
		"password": {password},
		"csrfauth": {string(m[1])},
	}
	body, err := c.postForm(ctx, "/login/edubarLogin.php", form)
	if err != nil {
		return nil, fmt.Errorf("submit login: %w", err)
	}

	page := string(body)
	switch {
	case strings.Contains(page, "bad=1"):
		return nil, result.Errorf(result.KindBadCredentials, "wrong username or password for %s", subdomain)
	case strings.Contains(page, "captcha"):
		return nil, result.Errorf(result.KindCaptcha, "%s is requesting a CAPTCHA", subdomain)
	}

	if err := c.loadUserhome(page); err != nil {
		// Some instances redirect to a bare frame after login; the
		// user page always carries the blob.
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// School returns the subdomain this session is authenticated against.
func (c *Client) School() string { return c.subdomain }

// Ping re-fetches the user page, keeping the cookies warm and the embedded
// data current.
func (c *Client) Ping(ctx context.Context) error {
	return c.refresh(ctx)
}

// refresh re-reads the user page and replaces the embedded login state.
func (c *Client) refresh(ctx context.Context) error {
	body, err := c.get(ctx, "/user/?barNoSkin=1")
	if err != nil {
		return fmt.Errorf("fetch user page: %w", err)
	}
	if err := c.loadUserhome(string(body)); err != nil {
		return result.Errorf(result.KindNotAuthenticated,
			"%s did not serve a logged-in page, the session may have expired", c.subdomain)
	}
	return nil
}

// loadUserhome extracts and applies the userhome JSON blob the web UI
// embeds in every logged-in page.
func (c *Client) loadUserhome(page string) error {
	m := reUserhome.FindStringSubmatch(page)
	if m == nil {
		return fmt.Errorf("no userhome payload in page")
	}
	var payload struct {
		UserRow map[string]any   `json:"userrow"`
		DBI     map[string]any   `json:"dbi"`
		Items   []map[string]any `json:"items"`
		Ringing []map[string]any `json:"zvonenia"`
	}
	if err := json.Unmarshal([]byte(m[1]), &payload); err != nil {
		return fmt.Errorf("parse userhome payload: %w", err)
	}

	c.mu.Lock()
	c.userRow = payload.UserRow
	c.dbi = payload.DBI
	c.items = payload.Items
	c.ringing = payload.Ringing
	c.userID = asInt(payload.UserRow["UserID"])
	if gm := reGsecHash.FindStringSubmatch(page); gm != nil {
		c.gsecHash = gm[1]
	}
	c.mu.Unlock()
	return nil
}

// directory, visibleItems, bells, uid and gsec snapshot the embedded
// login state for one call.

func (c *Client) directory() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbi
}

func (c *Client) visibleItems() []map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

func (c *Client) bells() []map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ringing
}

func (c *Client) uid() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) gsec() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gsecHash
}

// get issues an authenticated GET against a path under the school's host.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.do(req)
}

// postForm issues an authenticated form POST.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// postJSON issues an authenticated JSON-RPC style POST, the convention the
// timetable and substitution viewers use.
func (c *Client) postJSON(ctx context.Context, path string, args any) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"__args": args,
		"__gsh":  c.gsec(),
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: unexpected status %s", req.Method, req.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

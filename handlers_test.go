package ecdocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestApp(t *testing.T, cfg SiteConfig) *App {
	t.Helper()
	dir := t.TempDir()
	cfg.DatabasePath = filepath.Join(dir, "pages.db")
	cfg.SessionSecret = "test-secret"
	a := New(cfg,
		WithContentFS(testContent()),
		WithStaticDir(filepath.Join(dir, "public")),
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }),
	)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

// sendWithCookies replays cookies from an earlier response on a new request.
func sendWithCookies(a *App, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func csrfFromBody(t *testing.T, body string) string {
	t.Helper()
	const marker = `name="_csrf" value="`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("no CSRF field in body")
	}
	rest := body[i+len(marker):]
	return rest[:strings.IndexByte(rest, '"')]
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "pages.db")}, WithContentFS(testContent()))
	if err := a.Setup(); err == nil {
		t.Fatal("expected error without SessionSecret")
	}
}

func TestHandlePage(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/guides/setup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>EC Docs - Setup</title>",
		`<meta property="og:url" content="https://edchapman.co.uk/guides/setup"/>`,
		`<meta property="og:title" content="Setup"/>`,
		`<meta property="og:description" content="Getting started"/>`,
		`<meta name="description" content="Ed Chapman documentation and notes"/>`,
		`<strong>ecdocs</strong>`,
		`rel="prev" href="/"`,
		`rel="next" href="/guides/usage-notes"`,
		"2026 ©",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "edit-link") {
		t.Errorf("edit link should be suppressed")
	}
}

func TestHandlePageRoot(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Introduction</title>") {
		t.Errorf("root title should not use the template")
	}
	if !strings.Contains(body, `<meta property="og:url" content="https://edchapman.co.uk/"/>`) {
		t.Errorf("root og:url missing")
	}
}

func TestHandlePageDefaultsWithoutFrontMatter(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	body := serve(a, http.MethodGet, "/guides/usage-notes", "").Body.String()
	if !strings.Contains(body, `<meta property="og:title" content="EC Docs"/>`) {
		t.Errorf("og:title should fall back to the default")
	}
	if !strings.Contains(body, `<meta property="og:description" content="Ed Chapman Documentation"/>`) {
		t.Errorf("og:description should fall back to the default")
	}
	if !strings.Contains(body, "<title>EC Docs - Usage Notes</title>") {
		t.Errorf("document title should use the derived page title")
	}
}

func TestHandlePageNotFound(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/does/not/exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This page could not be found.") {
		t.Errorf("expected themed 404 page")
	}
}

func TestNotFoundPageCarriesCSRFToken(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/does/not/exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	token := csrfFromBody(t, rec.Body.String())
	if token == "" {
		t.Fatal("404 page rendered an empty CSRF token")
	}
	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			cookie = c.Value
		}
	}
	if cookie != token {
		t.Errorf("form token %q does not match _csrf cookie %q", token, cookie)
	}

	// The appearance form on the 404 page must be usable.
	form := url.Values{"appearance": {"light"}, "_csrf": {token}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/appearance", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := sendWithCookies(a, req, rec.Result().Cookies()); got.Code != http.StatusSeeOther {
		t.Errorf("appearance from 404 page: status = %d, want 303", got.Code)
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/guides/setup/", "")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/guides/setup" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleSearch(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/search?q=install", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var results []SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 || results[0].Route != "/guides/setup" {
		t.Fatalf("results = %+v", results)
	}

	rec = serve(a, http.MethodGet, "/search?q=", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty query body = %q, want []", rec.Body.String())
	}

	rec = serve(a, http.MethodGet, "/search?q=x&limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}
}

func TestHandleSearchRateLimited(t *testing.T) {
	a := newTestApp(t, SiteConfig{SearchLimit: 1})
	if rec := serve(a, http.MethodGet, "/search?q=install", ""); rec.Code != http.StatusOK {
		t.Fatalf("first search status = %d", rec.Code)
	}
	if rec := serve(a, http.MethodGet, "/search?q=install", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second search status = %d, want 429", rec.Code)
	}
}

func TestHandleAppearanceRequiresCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	form := url.Values{"appearance": {"dark"}}.Encode()
	rec := serve(a, http.MethodPost, "/appearance", form)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHandleAppearanceStoresPreference(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	first := serve(a, http.MethodGet, "/", "")
	if first.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", first.Code)
	}
	token := csrfFromBody(t, first.Body.String())

	form := url.Values{"appearance": {"dark"}, "_csrf": {token}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/appearance", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/guides/setup")
	post := sendWithCookies(a, req, first.Result().Cookies())
	if post.Code != http.StatusSeeOther {
		t.Fatalf("POST /appearance status = %d, want 303", post.Code)
	}
	if loc := post.Header().Get("Location"); loc != "/guides/setup" {
		t.Errorf("Location = %q, want /guides/setup", loc)
	}

	var cookies []*http.Cookie
	cookies = append(cookies, post.Result().Cookies()...)
	for _, c := range first.Result().Cookies() {
		if c.Name == "_csrf" {
			cookies = append(cookies, c)
		}
	}
	var hasSession bool
	for _, c := range cookies {
		if c.Name == sessionName {
			hasSession = true
		}
	}
	if !hasSession {
		t.Fatalf("POST /appearance set no %s cookie", sessionName)
	}

	next := sendWithCookies(a, httptest.NewRequest(http.MethodGet, "/guides/setup", nil), cookies)
	body := next.Body.String()
	if !strings.Contains(body, `class="appearance-dark"`) {
		t.Errorf("stored appearance not applied to <html>")
	}
	if !strings.Contains(body, `<option value="dark" selected>`) {
		t.Errorf("stored appearance not selected in the form")
	}
}

func TestHandleAppearanceRejectsUnknownValue(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	first := serve(a, http.MethodGet, "/", "")
	token := csrfFromBody(t, first.Body.String())

	form := url.Values{"appearance": {"sepia"}, "_csrf": {token}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/appearance", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if rec := sendWithCookies(a, req, first.Result().Cookies()); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSitemap(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/sitemap.xml", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<loc>https://edchapman.co.uk/</loc>",
		"<loc>https://edchapman.co.uk/guides/setup</loc>",
		"<loc>https://edchapman.co.uk/guides/usage-notes</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestHandleRobotsFallback(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/robots.txt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sitemap: https://edchapman.co.uk/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}
}

func TestEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := serve(a, http.MethodGet, "/public/theme.css", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".navbar") {
		t.Errorf("unexpected stylesheet body")
	}
}

package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBrowsePages(t *testing.T) {
	app, _ := newMarketApp(t)
	alice := login(t, app, "alice@tradepost.test")

	doJSON(t, app, "POST", "/api/v1/items", alice,
		`{"name":"Philco 1939","description":"tube radio","price":350}`)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Philco 1939") {
		t.Fatalf("home page missing listing; status=%d body=%s", resp.StatusCode, body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/item/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "tube radio") {
		t.Fatalf("detail page missing description; status=%d body=%s", resp.StatusCode, body)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/item/999", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing listing: want 404, got %d", resp.StatusCode)
	}
}

// Templates auto-escape untrusted listing text
func TestTemplateAutoEscape(t *testing.T) {
	app, _ := newMarketApp(t)
	alice := login(t, app, "alice@tradepost.test")

	doJSON(t, app, "POST", "/api/v1/items", alice,
		`{"name":"<script>alert(1)</script>","description":"<b>desc</b>","price":10}`)

	resp, err := app.Test(httptest.NewRequest("GET", "/item/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", s)
	}
}

package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	gohttp "github.com/km-arc/controlled-form/framework/http"
	"github.com/km-arc/controlled-form/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newFormRequest(t *testing.T, values url.Values) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── Request ──────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	var ev struct {
		Name    string `json:"name"`
		Checked bool   `json:"checked"`
	}
	req := newJSONRequest(t, `{"name":"save","checked":true}`)
	if err := req.Bind(&ev); err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if ev.Name != "save" || !ev.Checked {
		t.Errorf("got %+v", ev)
	}
	if !req.IsJSON() {
		t.Error("IsJSON should be true")
	}
}

func TestRequest_BindJSON_EmptyBody(t *testing.T) {
	var v any
	if err := newJSONRequest(t, "").Bind(&v); !errors.Is(err, gohttp.ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestRequest_BindJSON_Invalid(t *testing.T) {
	var v map[string]any
	if err := newJSONRequest(t, `{bad json}`).Bind(&v); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRequest_InputAndAll(t *testing.T) {
	req := newFormRequest(t, url.Values{"name": {"Carlo"}, "type": {"text"}})

	if got := req.Input("name"); got != "Carlo" {
		t.Errorf("Input(name): got %q", got)
	}
	if got := req.Input("missing", "fallback"); got != "fallback" {
		t.Errorf("Input fallback: got %q", got)
	}
	if !req.Has("type") || req.Has("value") {
		t.Error("Has: wrong presence")
	}
	all := req.All()
	if all["name"] != "Carlo" || all["type"] != "text" {
		t.Errorf("All: got %v", all)
	}
}

func TestRequest_CookieAndHeaders(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/form?x=1", nil)
	raw.AddCookie(&http.Cookie{Name: "form_session", Value: "abc"})
	raw.Header.Set("Accept", "application/json")
	req := gohttp.NewRequest(raw)

	if req.Cookie("form_session") != "abc" {
		t.Error("Cookie: wrong value")
	}
	if req.Cookie("nope") != "" {
		t.Error("missing cookie should be empty")
	}
	if !req.WantsJSON() {
		t.Error("WantsJSON should be true")
	}
	if req.Query("x") != "1" || req.Path() != "/form" || req.Method() != http.MethodGet {
		t.Error("Query/Path/Method mismatch")
	}
}

// ── Response ─────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if m := decodeJSON(t, rr); m["key"] != "val" {
		t.Errorf("body: got %v", m)
	}
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"id": 1})

	m := decodeJSON(t, rr)
	if _, ok := m["data"].(map[string]any); !ok {
		t.Fatalf("expected data envelope, got %T", m["data"])
	}
}

func TestResponse_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*gohttp.Response)
		code int
		msg  string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad") }, 400, "bad"},
		{"NotFound", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"ServerError", func(r *gohttp.Response) { r.ServerError("boom") }, 500, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.fn(res)
			if rr.Code != tt.code {
				t.Errorf("status: got %d want %d", rr.Code, tt.code)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.msg {
				t.Errorf("message: got %v want %q", m["message"], tt.msg)
			}
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	res, rr := newResponse(t)
	var bag validation.Errors
	bag.Add("name", "unknown field")
	res.ValidationError(&bag)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	m := decodeJSON(t, rr)
	errs, ok := m["errors"].(map[string]any)
	if !ok || errs["name"] == nil {
		t.Errorf("errors bag: got %v", m)
	}
}

func TestResponse_NoContentAndRedirects(t *testing.T) {
	res, rr := newResponse(t)
	res.NoContent()
	if rr.Code != http.StatusNoContent {
		t.Errorf("NoContent: got %d", rr.Code)
	}

	res, rr = newResponse(t)
	res.SeeOther("/")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Errorf("SeeOther: got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	res, rr = newResponse(t)
	res.RedirectTo("/done")
	if rr.Code != http.StatusFound {
		t.Errorf("RedirectTo: got %d", rr.Code)
	}
}

// ── ViewEngine ───────────────────────────────────────────────────────────────

func TestViewEngine_RenderAndView(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.html": {Data: []byte(`{{define "hello"}}<p>Hello {{.}}</p>{{end}}`)},
	}
	ve, err := gohttp.NewViewEngine(fsys)
	if err != nil {
		t.Fatalf("NewViewEngine: %v", err)
	}

	rr := httptest.NewRecorder()
	ve.View(rr, "hello", "<b>")
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d", rr.Code)
	}
	if got := rr.Body.String(); got != "<p>Hello &lt;b&gt;</p>" {
		t.Errorf("body: got %q", got)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestViewEngine_MissingTemplate(t *testing.T) {
	ve, err := gohttp.NewViewEngine(fstest.MapFS{"a.html": {Data: []byte(`{{define "a"}}a{{end}}`)}})
	if err != nil {
		t.Fatalf("NewViewEngine: %v", err)
	}
	rr := httptest.NewRecorder()
	ve.View(rr, "nope", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d want 500", rr.Code)
	}
}

func TestViewEngine_NoMatchingFiles(t *testing.T) {
	if _, err := gohttp.NewViewEngine(fstest.MapFS{}); err == nil {
		t.Error("expected error when no templates match")
	}
}

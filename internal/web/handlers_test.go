package web

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"novel/internal/session"
	"novel/internal/story"
)

const testStory = `title: "Test Walk"
start: room
initial:
  health: 50
  maxHealth: 100
  spirit: 50
  maxSpirit: 100
  items:
    - id: toast
      quantity: 1
items:
  toast:
    name: "Toast"
    type: recovery
    description: "Slightly burnt."
    usable: true
scenes:
  room:
    title: "Room"
    image: "scenes/room.png"
    dialogues: ["You wake up.", "The room is cold."]
    choices:
      - text: "Go outside"
        next: street
  street:
    title: "Street"
    dialogues: ["The street is empty."]
    choices:
      - text: "Go home"
        next: room
`

func testServer(t *testing.T) *Server {
	t.Helper()
	f, err := story.Parse([]byte(testStory))
	if err != nil {
		t.Fatalf("parse story: %v", err)
	}
	book, err := story.Compile(f, story.DefaultScripts())
	if err != nil {
		t.Fatalf("compile story: %v", err)
	}

	tmplDir := filepath.Join("..", "..", "templates")
	tmpl := template.Must(template.ParseFiles(
		filepath.Join(tmplDir, "layout.html"),
		filepath.Join(tmplDir, "game.html"),
	))
	return &Server{
		Book:       book,
		Store:      session.NewMemoryStore[*Play](time.Hour),
		Tmpl:       tmpl,
		Assets:     t.TempDir(),
		Lang:       "en",
		Slots:      4,
		MessageTTL: time.Minute,
	}
}

// startSession loads the index page and returns the session cookie.
func startSession(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from index, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("Expected session cookie")
	return nil
}

func post(t *testing.T, srv *Server, cookie *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Test Walk", "You wake up.", "/images/scenes/room.png", "Toast"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if srv.Store.(*session.MemoryStore[*Play]).Len() != 1 {
		t.Error("Expected one stored session")
	}
}

func TestHandleIndex_NotFound(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/nowhere", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleDialogueThenPlay(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)

	rec := post(t, srv, cookie, "/dialogue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The room is cold.") {
		t.Error("Expected second dialogue line")
	}
	if !strings.Contains(rec.Body.String(), "Go outside") {
		t.Error("Expected choices after the last line")
	}

	rec = post(t, srv, cookie, "/play", url.Values{"choice": {"1"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The street is empty.") {
		t.Error("Expected street dialogue after choosing")
	}

	req := httptest.NewRequest(http.MethodGet, "/play", http.NoBody)
	req.AddCookie(cookie)
	get := httptest.NewRecorder()
	srv.Routes().ServeHTTP(get, req)
	if !strings.Contains(get.Body.String(), "The street is empty.") {
		t.Error("Expected GET /play to redraw the current scene")
	}
}

func TestHandlePlay_UnknownChoice(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)

	rec := post(t, srv, cookie, "/play", url.Values{"choice": {"9"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestHandlePlay_MethodNotAllowed(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/play", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHandleItem(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)

	rec := post(t, srv, cookie, "/item", url.Values{"item": {"toast"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Slightly burnt.") || !strings.Contains(body, "Back") {
		t.Errorf("Expected item view with a back choice, got %s", body)
	}

	rec = post(t, srv, cookie, "/item", url.Values{"item": {"crowbar"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an item not carried, got %d", rec.Code)
	}
}

func TestHandleRestart(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)
	post(t, srv, cookie, "/play", url.Values{"choice": {"1"}})

	rec := post(t, srv, cookie, "/restart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "You wake up.") {
		t.Error("Expected restart to return to the start scene")
	}
}

func TestHandleJournal(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)
	post(t, srv, cookie, "/play", url.Values{"choice": {"1"}})

	req := httptest.NewRequest(http.MethodGet, "/journal", http.NoBody)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("Expected body to be a PDF")
	}
}

func TestHandleJournal_NoSession(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/journal", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("Expected 302, got %d", rec.Code)
	}
}

func TestHandleImage(t *testing.T) {
	srv := testServer(t)
	dir := filepath.Join(srv.Assets, "scenes")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	want, err := placeholderPNG("fixture")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "room.png"), want, 0o600); err != nil { //nolint:gosec // test file permissions are acceptable
		t.Fatal(err)
	}

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)
		return rec
	}

	rec := get("/images/scenes/room")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got, _ := io.ReadAll(rec.Body); !bytes.Equal(got, want) {
		t.Error("Expected the file on disk to be served")
	}

	rec = get("/images/scenes/missing.png")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != contentTypePNG {
		t.Errorf("Expected a PNG placeholder, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	if rec = get("/images/"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an empty path, got %d", rec.Code)
	}
}

func TestImageCandidates_Traversal(t *testing.T) {
	srv := &Server{Assets: t.TempDir()}
	for _, p := range []string{"/images/../secret", "/images/scenes/../../secret", "/images/"} {
		if _, ok := srv.imageCandidates(p); ok {
			t.Errorf("Expected %q to be rejected", p)
		}
	}
	got, ok := srv.imageCandidates("/images/items/key")
	if !ok || len(got) != 1+len(imageExtensions) {
		t.Errorf("Expected bare name plus one candidate per extension, got %v", got)
	}
}

func TestPlaceholderImage_Deterministic(t *testing.T) {
	a, b := placeholderImage("scenes/day1.png"), placeholderImage("scenes/day1.png")
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected the same name to draw the same image")
	}
	if a.Bounds().Dx() != imgW || a.Bounds().Dy() != imgH {
		t.Errorf("Expected %dx%d, got %v", imgW, imgH, a.Bounds())
	}
}

func TestEvict(t *testing.T) {
	srv := testServer(t)
	cookie := startSession(t, srv)

	store := srv.Store.(*session.MemoryStore[*Play])
	play, ok, _ := store.Get(context.Background(), cookie.Value)
	if !ok {
		t.Fatal("Expected session to exist")
	}
	Evict(play)
	if play.Ctrl.CurrentID() != "room" {
		t.Errorf("Expected evicted session to stay readable, got %q", play.Ctrl.CurrentID())
	}
}

func TestNewPlay_Language(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9")
	play, err := srv.newPlay(req)
	if err != nil {
		t.Fatalf("newPlay: %v", err)
	}
	if got := play.Lang.String(); got != "zh-Hant" {
		t.Errorf("Expected zh-Hant, got %s", got)
	}
}

func TestHandleIndex_LocalizedLabels(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Accept-Language", "zh-TW")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"體力", "日記 (PDF)"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "Journal (PDF)") {
		t.Error("Expected no English journal link")
	}
}

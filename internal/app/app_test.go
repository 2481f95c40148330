package app

import (
	"bytes"
	"encoding/json"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCookie = "interview_session"

type testClient struct {
	t      *testing.T
	app    *App
	cookie *http.Cookie
}

func setupTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	uploads := filepath.Join(dir, "resumes")

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "app.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Session: config.SessionConfig{
			Secret:     "app-test-secret-0123456789abcdefghij",
			ExpireTime: time.Hour,
			CookieName: testCookie,
			Store:      "memory",
		},
		Storage:   config.StorageConfig{Type: "local", LocalPath: uploads, MaxUploadMB: 1},
		Auth:      config.AuthConfig{BcryptCost: 4},
		Interview: config.InterviewConfig{DefaultRole: "Professional", WordThreshold: 15, LongPoints: 10, ShortPoints: 5},
	}

	return New(cfg, db, nil), uploads
}

func newClient(t *testing.T, app *App) *testClient {
	return &testClient{t: t, app: app}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.app.Router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookie {
			if ck.MaxAge < 0 || ck.Value == "" {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *testClient) postJSON(path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) postResume(filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("resume", filename)
		require.NoError(c.t, err)
		_, err = part.Write(content)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze_resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func registrationForm(name, email string) url.Values {
	return url.Values{
		"full_name": {name},
		"mobile":    {"555-0100"},
		"email":     {email},
		"password":  {"s3cret-pass"},
	}
}

func answer(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestInterviewFlow(t *testing.T) {
	app, uploads := setupTestApp(t)
	client := newClient(t, app)

	w := client.postForm("/register", registrationForm("Alice", "alice@example.com"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	require.NotNil(t, client.cookie)

	w = client.get("/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")

	w = client.get("/setup/Software%20Engineering")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Software Engineering")

	w = client.postResume("cv.pdf", []byte("%PDF-1.4 resume"), map[string]string{
		"job_role": "Backend Engineer",
		"level":    "Advanced",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "82")
	assert.Contains(t, w.Body.String(), "Add skills specific to Backend Engineer")

	stored, err := os.ReadFile(filepath.Join(uploads, "Alice_cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(stored))

	w = client.get("/interview")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Describe your journey as a Backend Engineer.")
	assert.Equal(t, 10, strings.Count(w.Body.String(), `class="question"`))

	payload, err := json.Marshal(map[string]interface{}{
		"responses": []model.InterviewResponse{
			{Question: "Describe your journey as a Backend Engineer.", Answer: answer(20)},
			{Question: "What is your biggest strength?", Answer: answer(5)},
		},
	})
	require.NoError(t, err)

	w = client.postJSON("/submit_interview", string(payload))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "/results", resp["redirect"])

	first := client.get("/results")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `<p class="score" id="score">15</p>`)
	assert.Contains(t, first.Body.String(), "What is your biggest strength?")

	second := client.get("/results")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestInterviewWithoutResumeUsesDefaultRole(t *testing.T) {
	app, _ := setupTestApp(t)
	client := newClient(t, app)

	require.Equal(t, http.StatusFound, client.postForm("/register", registrationForm("Bob", "bob@example.com")).Code)

	w := client.get("/interview")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Describe your journey as a Professional.")

	w = client.get("/results")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<p class="score" id="score">0</p>`)
}

func TestAnalyzeResumeWithoutFile(t *testing.T) {
	app, uploads := setupTestApp(t)
	client := newClient(t, app)

	require.Equal(t, http.StatusFound, client.postForm("/register", registrationForm("Carol", "carol@example.com")).Code)

	w := client.postResume("", nil, map[string]string{"job_role": "Designer", "level": "Beginner"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add skills specific to Designer")

	entries, _ := os.ReadDir(uploads)
	assert.Empty(t, entries)
}

func TestAnalyzeResumeTooLarge(t *testing.T) {
	app, _ := setupTestApp(t)
	client := newClient(t, app)

	require.Equal(t, http.StatusFound, client.postForm("/register", registrationForm("Dan", "dan@example.com")).Code)

	big := bytes.Repeat([]byte("a"), 2<<20)
	w := client.postResume("big.pdf", big, map[string]string{"job_role": "Designer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitInterviewRejectsMalformedBody(t *testing.T) {
	app, _ := setupTestApp(t)
	client := newClient(t, app)

	require.Equal(t, http.StatusFound, client.postForm("/register", registrationForm("Erin", "erin@example.com")).Code)

	for _, body := range []string{`not json`, `{"responses": "text"}`} {
		w := client.postJSON("/submit_interview", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	// 缺少 answer 的条目按空回答计 5 分
	w := client.postJSON("/submit_interview", `{"responses": [{"question": "q1"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, client.get("/results").Body.String(), `<p class="score" id="score">5</p>`)
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	app, _ := setupTestApp(t)
	client := newClient(t, app)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/dashboard", nil),
		httptest.NewRequest(http.MethodGet, "/setup/Design", nil),
		httptest.NewRequest(http.MethodPost, "/analyze_resume", nil),
		httptest.NewRequest(http.MethodGet, "/interview", nil),
		httptest.NewRequest(http.MethodPost, "/submit_interview", strings.NewReader(`{"responses":[]}`)),
		httptest.NewRequest(http.MethodGet, "/results", nil),
	}
	for _, req := range requests {
		w := client.do(req)
		assert.Equal(t, http.StatusFound, w.Code, req.URL.Path)
		assert.Equal(t, "/", w.Header().Get("Location"), req.URL.Path)
	}
}

func TestRegistrationErrors(t *testing.T) {
	app, _ := setupTestApp(t)

	first := newClient(t, app)
	require.Equal(t, http.StatusFound, first.postForm("/register", registrationForm("Alice", "alice@example.com")).Code)

	t.Run("duplicate email", func(t *testing.T) {
		w := newClient(t, app).postForm("/register", registrationForm("Alice Again", "ALICE@example.com"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "Registration Error"))
	})

	t.Run("invalid email", func(t *testing.T) {
		w := newClient(t, app).postForm("/register", registrationForm("Zed", "not-an-email"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "Registration Error"))
	})

	t.Run("missing fields", func(t *testing.T) {
		w := newClient(t, app).postForm("/register", url.Values{"email": {"x@example.com"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "Registration Error"))
	})
}

func TestLoginAndLogout(t *testing.T) {
	app, _ := setupTestApp(t)

	require.Equal(t, http.StatusFound, newClient(t, app).postForm("/register", registrationForm("Alice", "alice@example.com")).Code)

	client := newClient(t, app)
	w := client.postForm("/login", url.Values{"email": {"alice@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, client.cookie)

	w = client.postForm("/login", url.Values{"email": {"alice@example.com"}, "password": {"s3cret-pass"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	require.NotNil(t, client.cookie)
	token := client.cookie

	assert.Equal(t, http.StatusOK, client.get("/dashboard").Code)

	w = client.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, client.cookie)

	// 退出后旧 Cookie 失效
	client.cookie = token
	w = client.get("/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestPublicEndpoints(t *testing.T) {
	app, _ := setupTestApp(t)
	client := newClient(t, app)

	w := client.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/register"`)

	w = client.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	w = client.get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

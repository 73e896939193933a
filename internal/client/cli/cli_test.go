package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/client/config"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	*httptest.Server

	// accessToken replaces the default "acc" login token when set.
	accessToken string

	mu        sync.Mutex
	lastQuery string
	lastAuth  string
}

func (f *fakeAPI) last() (query, auth string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery, f.lastAuth
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"code":401,"message":"Invalid email or password."}}`)
			return
		}
		token := "acc"
		if f.accessToken != "" {
			token = f.accessToken
		}
		_, _ = io.WriteString(w, `{"id":"u1","email":"`+body["email"]+`","name":"Alice","token":"`+token+`","refreshToken":"ref"}`)
	})
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"user":{"id":"u1","email":"`+body["email"]+`","name":"`+body["name"]+`","role":"user"},"token":"acc"}`)
	})
	mux.HandleFunc("GET /api/Tasks", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastQuery = r.URL.RawQuery
		f.lastAuth = r.Header.Get("Authorization")
		f.mu.Unlock()
		_, _ = io.WriteString(w, `[{"id":"t1","title":"Buy milk","status":"Incomplete","dueDate":"2025-06-15T10:00:00Z","labels":[{"id":"l1","name":"home"}],"subtasks":[{"id":"s1","title":"a","completed":true},{"id":"s2","title":"b","completed":false}]}]`)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = apiURL
	cfg.SessionSecret = "cli-test-secret"
	cfg.RequestTimeout = time.Second
	cfg.SessionFile = filepath.Join(t.TempDir(), "nested", "session")
	return cfg
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(cfg, strings.NewReader(stdin), &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoginWhoamiTasksLogout(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, api.URL)
	stubPassword(t, "secret")

	out, err := run(t, cfg, "a@example.com\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice <a@example.com>")

	info, err := os.Stat(cfg.SessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err = run(t, cfg, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice <a@example.com>")
	assert.Contains(t, out, "role:    user")

	out, err = run(t, cfg, "", "tasks", "--overdue", "--label", "l1")
	require.NoError(t, err)
	query, auth := api.last()
	assert.Equal(t, "Bearer acc", auth)
	assert.Equal(t, "labelId=l1&overdue=true", query)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "15-06-2025")
	assert.Contains(t, out, "1/2")

	out, err = run(t, cfg, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = run(t, cfg, "", "whoami")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestWhoami_LapsedAccessToken(t *testing.T) {
	api := newFakeAPI(t)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("server-key"))
	require.NoError(t, err)
	api.accessToken = expired
	cfg := testConfig(t, api.URL)
	stubPassword(t, "secret")

	_, err = run(t, cfg, "a@example.com\n", "login")
	require.NoError(t, err)

	_, err = run(t, cfg, "", "whoami")
	require.ErrorIs(t, err, errAccessExpired)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, api.URL)
	stubPassword(t, "wrong")

	_, err := run(t, cfg, "", "login", "--email", "a@example.com")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.NoFileExists(t, cfg.SessionFile)
}

func TestRegister(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, api.URL)
	stubPassword(t, "secret")

	out, err := run(t, cfg, "Bob\nb@example.com\n", "register")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Bob <b@example.com>")
}

func TestMissingSecret(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.SessionSecret = ""

	_, err := run(t, cfg, "", "whoami")
	assert.ErrorContains(t, err, "session secret")
}

func TestFlagsOverrideConfig(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, "http://127.0.0.1:1")
	stubPassword(t, "secret")

	_, err := run(t, cfg, "", "login", "--email", "a@example.com", "--api", api.URL)
	require.NoError(t, err)
	assert.Equal(t, api.URL, cfg.APIBaseURL)
}

func TestTaskFilters_Values(t *testing.T) {
	f := taskFilters{listID: "l", dueDate: "01-02-2025", unsorted: true, completed: true}
	assert.Equal(t, "completed=true&dueDate=01-02-2025&listId=l&unsorted=true", f.values().Encode())
	assert.Empty(t, taskFilters{}.values())
}

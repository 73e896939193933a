package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/server/auth"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/services"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ownerID = "7b1f3c0e-4a57-4a7e-9a3e-2f0b7f6f3a11"
	taskID  = "2c9f1a4e-0f1b-4d2a-8d51-6e3c4b1a9f22"
	labelID = "9a4e2d1c-3b5f-4e6a-b7c8-1d2e3f4a5b33"
	subID   = "5d6e7f80-1a2b-4c3d-8e9f-0a1b2c3d4e44"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type userServiceMock struct{ mock.Mock }

func (m *userServiceMock) Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error) {
	args := m.Called(ctx, in)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.String(1), args.Error(2)
}

func (m *userServiceMock) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	var res *services.LoginResult
	if v := args.Get(0); v != nil {
		res = v.(*services.LoginResult)
	}
	return res, args.Error(1)
}

func (m *userServiceMock) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	args := m.Called(ctx, token)
	var p *services.TokenPair
	if v := args.Get(0); v != nil {
		p = v.(*services.TokenPair)
	}
	return p, args.Error(1)
}

func (m *userServiceMock) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type taskServiceMock struct{ mock.Mock }

func (m *taskServiceMock) List(ctx context.Context, f taskquery.Filter) ([]models.Task, error) {
	args := m.Called(ctx, f)
	var tasks []models.Task
	if v := args.Get(0); v != nil {
		tasks = v.([]models.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) Get(ctx context.Context, owner, id string) (*models.Task, error) {
	args := m.Called(ctx, owner, id)
	var t *models.Task
	if v := args.Get(0); v != nil {
		t = v.(*models.Task)
	}
	return t, args.Error(1)
}

func (m *taskServiceMock) Create(ctx context.Context, owner string, t *models.Task) (*models.Task, error) {
	args := m.Called(ctx, owner, t)
	var out *models.Task
	if v := args.Get(0); v != nil {
		out = v.(*models.Task)
	}
	return out, args.Error(1)
}

func (m *taskServiceMock) Update(ctx context.Context, owner, id string, t *models.Task) (*models.Task, error) {
	args := m.Called(ctx, owner, id, t)
	var out *models.Task
	if v := args.Get(0); v != nil {
		out = v.(*models.Task)
	}
	return out, args.Error(1)
}

func (m *taskServiceMock) Delete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *taskServiceMock) AddLabel(ctx context.Context, owner, task, label string) error {
	return m.Called(ctx, owner, task, label).Error(0)
}

func (m *taskServiceMock) RemoveLabel(ctx context.Context, owner, task, label string) error {
	return m.Called(ctx, owner, task, label).Error(0)
}

type subtaskServiceMock struct{ mock.Mock }

func (m *subtaskServiceMock) Create(ctx context.Context, owner, task string, s *models.Subtask) (*models.Subtask, error) {
	args := m.Called(ctx, owner, task, s)
	var out *models.Subtask
	if v := args.Get(0); v != nil {
		out = v.(*models.Subtask)
	}
	return out, args.Error(1)
}

func (m *subtaskServiceMock) Get(ctx context.Context, owner, id string) (*models.Subtask, error) {
	args := m.Called(ctx, owner, id)
	var out *models.Subtask
	if v := args.Get(0); v != nil {
		out = v.(*models.Subtask)
	}
	return out, args.Error(1)
}

func (m *subtaskServiceMock) List(ctx context.Context, owner string) ([]models.Subtask, error) {
	args := m.Called(ctx, owner)
	var out []models.Subtask
	if v := args.Get(0); v != nil {
		out = v.([]models.Subtask)
	}
	return out, args.Error(1)
}

func (m *subtaskServiceMock) Update(ctx context.Context, owner, id string, s *models.Subtask) error {
	return m.Called(ctx, owner, id, s).Error(0)
}

func (m *subtaskServiceMock) Delete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

type catalogServiceMock struct{ mock.Mock }

func (m *catalogServiceMock) CreateLabel(ctx context.Context, owner string, l *models.Label) (*models.Label, error) {
	args := m.Called(ctx, owner, l)
	var out *models.Label
	if v := args.Get(0); v != nil {
		out = v.(*models.Label)
	}
	return out, args.Error(1)
}

func (m *catalogServiceMock) Labels(ctx context.Context, owner string) ([]models.Label, error) {
	args := m.Called(ctx, owner)
	var out []models.Label
	if v := args.Get(0); v != nil {
		out = v.([]models.Label)
	}
	return out, args.Error(1)
}

func (m *catalogServiceMock) CreateList(ctx context.Context, owner string, l *models.List) (*models.List, error) {
	args := m.Called(ctx, owner, l)
	var out *models.List
	if v := args.Get(0); v != nil {
		out = v.(*models.List)
	}
	return out, args.Error(1)
}

func (m *catalogServiceMock) Lists(ctx context.Context, owner string) ([]models.List, error) {
	args := m.Called(ctx, owner)
	var out []models.List
	if v := args.Get(0); v != nil {
		out = v.([]models.List)
	}
	return out, args.Error(1)
}

type pingerStub struct{ err error }

func (p pingerStub) PingContext(context.Context) error { return p.err }

type testEnv struct {
	users    *userServiceMock
	tasks    *taskServiceMock
	subtasks *subtaskServiceMock
	catalog  *catalogServiceMock
	issuer   *auth.Issuer
	logs     *bytes.Buffer
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tr, err := apierrors.NewTranslator()
	require.NoError(t, err)
	issuer, err := auth.NewIssuer(testSecret, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	log, err := logging.New(logging.BackendSlog, logs)
	require.NoError(t, err)

	env := &testEnv{
		users:    new(userServiceMock),
		tasks:    new(taskServiceMock),
		subtasks: new(subtaskServiceMock),
		catalog:  new(catalogServiceMock),
		issuer:   issuer,
		logs:     logs,
	}
	env.handler = NewRouter(Deps{
		Users:          env.users,
		Tasks:          env.tasks,
		Subtasks:       env.subtasks,
		Catalog:        env.catalog,
		Tokens:         issuer,
		DB:             pingerStub{},
		Translator:     tr,
		Logger:         log,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.tasks.AssertExpectations(t)
		env.subtasks.AssertExpectations(t)
		env.catalog.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := e.issuer.CreateAccessToken(&models.User{ID: ownerID, Email: "a@example.com", Name: "Alice"})
	require.NoError(t, err)
	return tok
}

// do sends a request; a non-empty bearer sets the Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.Err {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got.ErrDetails
}

func newRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

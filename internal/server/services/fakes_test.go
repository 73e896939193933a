package services

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/dbx"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/labels"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/lists"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/subtasks"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskhub/internal/server/repositories/users"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore is an in-memory backing for every repository. Repositories
// ignore the DBTX they are bound to.
type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]*models.User
	tokens   map[string]*models.RefreshToken
	tasks    map[string]*models.Task
	links    map[[2]string]bool
	subtasks map[string]*models.Subtask
	labels   map[string]*models.Label
	lists    map[string]*models.List

	// failures injected by tests
	errUsers, errTokens, errTasks, errSubtasks, errLabels error
	lastQuery                                              taskquery.Query
	// updateMisses makes the next task Update report zero rows.
	updateMisses bool
	// vanishOnUpdate deletes the row instead of updating it.
	vanishOnUpdate bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		tokens:   map[string]*models.RefreshToken{},
		tasks:    map[string]*models.Task{},
		links:    map[[2]string]bool{},
		subtasks: map[string]*models.Subtask{},
		labels:   map[string]*models.Label{},
		lists:    map[string]*models.List{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

type memRepoManager struct{ s *memStore }

func (m memRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m memRepoManager) Users(dbx.DBTX) users.Repository                 { return memUsers{m.s} }
func (m memRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memTokens{m.s} }
func (m memRepoManager) Tasks(dbx.DBTX) tasks.Repository                 { return memTasks{m.s} }
func (m memRepoManager) Subtasks(dbx.DBTX) subtasks.Repository           { return memSubtasks{m.s} }
func (m memRepoManager) Labels(dbx.DBTX) labels.Repository               { return memLabels{m.s} }
func (m memRepoManager) Lists(dbx.DBTX) lists.Repository                 { return memLists{m.s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errUsers != nil {
		return nil, r.s.errUsers
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrEmailTaken
		}
	}
	u.ID = r.s.nextID("u")
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errUsers != nil {
		return nil, r.s.errUsers
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errUsers != nil {
		return 0, r.s.errUsers
	}
	return int64(len(r.s.users)), nil
}

type memTokens struct{ s *memStore }

func (r memTokens) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errTokens != nil {
		return r.s.errTokens
	}
	r.s.tokens[token] = &models.RefreshToken{ID: r.s.nextID("rt"), UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (r memTokens) Consume(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errTokens != nil {
		return nil, r.s.errTokens
	}
	rt, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.s.tokens, token)
	return rt, nil
}

func (r memTokens) DeleteExpired(_ context.Context, t time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, rt := range r.s.tokens {
		if rt.ExpiresAt.Before(t) {
			delete(r.s.tokens, k)
			n++
		}
	}
	return n, nil
}

type memTasks struct{ s *memStore }

// List ignores the filter and returns every task in id order; the query is
// kept for inspection.
func (r memTasks) List(_ context.Context, q taskquery.Query) ([]models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errTasks != nil {
		return nil, r.s.errTasks
	}
	r.s.lastQuery = q
	out := []models.Task{}
	for _, t := range r.s.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTasks) Get(_ context.Context, id string) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errTasks != nil {
		return nil, r.s.errTasks
	}
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID("t")
	t.CreatedAt = time.Now()
	cp := *t
	r.s.tasks[t.ID] = &cp
	return t, nil
}

func (r memTasks) Update(_ context.Context, t *models.Task) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateMisses {
		r.s.updateMisses = false
		return 0, nil
	}
	if r.s.vanishOnUpdate {
		r.s.vanishOnUpdate = false
		delete(r.s.tasks, t.ID)
		return 0, nil
	}
	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.UserID != t.UserID {
		return 0, nil
	}
	cp := *t
	r.s.tasks[t.ID] = &cp
	return 1, nil
}

func (r memTasks) SetStatus(_ context.Context, id string, status models.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok {
		t.Status = status
	}
	return nil
}

func (r memTasks) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.tasks[id]
	return ok, nil
}

// Delete cascades to subtasks and label links like the schema does.
func (r memTasks) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return 0, nil
	}
	delete(r.s.tasks, id)
	for sid, st := range r.s.subtasks {
		if st.TaskID == id {
			delete(r.s.subtasks, sid)
		}
	}
	for k := range r.s.links {
		if k[0] == id {
			delete(r.s.links, k)
		}
	}
	return 1, nil
}

func (r memTasks) HasLabel(_ context.Context, taskID, labelID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.links[[2]string{taskID, labelID}], nil
}

func (r memTasks) AddLabel(_ context.Context, taskID, labelID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := [2]string{taskID, labelID}
	if r.s.links[k] {
		return common.ErrLabelAlreadyAttached
	}
	r.s.links[k] = true
	return nil
}

func (r memTasks) RemoveLabel(_ context.Context, taskID, labelID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := [2]string{taskID, labelID}
	if !r.s.links[k] {
		return 0, nil
	}
	delete(r.s.links, k)
	return 1, nil
}

type memSubtasks struct{ s *memStore }

func (r memSubtasks) Create(_ context.Context, st *models.Subtask) (*models.Subtask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st.ID = r.s.nextID("s")
	cp := *st
	r.s.subtasks[st.ID] = &cp
	return st, nil
}

func (r memSubtasks) Get(_ context.Context, id string) (*models.Subtask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errSubtasks != nil {
		return nil, r.s.errSubtasks
	}
	st, ok := r.s.subtasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *st
	return &cp, nil
}

func (r memSubtasks) ListByOwner(_ context.Context, userID string) ([]models.Subtask, error) {
	return r.filter(func(st *models.Subtask) bool { return st.UserID == userID }), nil
}

func (r memSubtasks) ListByTask(_ context.Context, taskID string) ([]models.Subtask, error) {
	return r.filter(func(st *models.Subtask) bool { return st.TaskID == taskID }), nil
}

func (r memSubtasks) filter(keep func(*models.Subtask) bool) []models.Subtask {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Subtask{}
	for _, st := range r.s.subtasks {
		if keep(st) {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memSubtasks) Update(_ context.Context, st *models.Subtask) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subtasks[st.ID]; !ok {
		return 0, nil
	}
	cp := *st
	r.s.subtasks[st.ID] = &cp
	return 1, nil
}

func (r memSubtasks) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subtasks[id]; !ok {
		return 0, nil
	}
	delete(r.s.subtasks, id)
	return 1, nil
}

type memLabels struct{ s *memStore }

func (r memLabels) Create(_ context.Context, l *models.Label) (*models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errLabels != nil {
		return nil, r.s.errLabels
	}
	l.ID = r.s.nextID("lb")
	cp := *l
	r.s.labels[l.ID] = &cp
	return l, nil
}

func (r memLabels) Get(_ context.Context, id string) (*models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.labels[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (r memLabels) ListByOwner(_ context.Context, userID string) ([]models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errLabels != nil {
		return nil, r.s.errLabels
	}
	out := []models.Label{}
	for _, l := range r.s.labels {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memLists struct{ s *memStore }

func (r memLists) Create(_ context.Context, l *models.List) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.nextID("l")
	cp := *l
	r.s.lists[l.ID] = &cp
	return l, nil
}

func (r memLists) Owned(_ context.Context, userID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lists[id]
	return ok && l.UserID == userID, nil
}

func (r memLists) ListByOwner(_ context.Context, userID string) ([]models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.List{}
	for _, l := range r.s.lists {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

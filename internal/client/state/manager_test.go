package state

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/coursekeeper/internal/client/catalog"
	"github.com/dmitrijs2005/coursekeeper/internal/client/config"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/client/services"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	snapshots []Snapshot
}

func (r *recordingRenderer) Render(_ context.Context, s Snapshot) {
	r.snapshots = append(r.snapshots, s)
}

func (r *recordingRenderer) last(t *testing.T) Snapshot {
	t.Helper()
	require.NotEmpty(t, r.snapshots, "renderer was never called")
	return r.snapshots[len(r.snapshots)-1]
}

var errWrite = errors.New("disk full")

// brokenWrites fails every Set, Remove, Update and Clear once armed.
type brokenWrites struct {
	*kv.MemoryRepository
	armed bool
}

func (b *brokenWrites) Set(ctx context.Context, k, v string) error {
	if b.armed {
		return errWrite
	}
	return b.MemoryRepository.Set(ctx, k, v)
}

func (b *brokenWrites) Remove(ctx context.Context, k string) error {
	if b.armed {
		return errWrite
	}
	return b.MemoryRepository.Remove(ctx, k)
}

func (b *brokenWrites) Update(ctx context.Context, k string, fn kv.UpdateFunc) error {
	if b.armed {
		return errWrite
	}
	return b.MemoryRepository.Update(ctx, k, fn)
}

func (b *brokenWrites) Clear(ctx context.Context) error {
	if b.armed {
		return errWrite
	}
	return b.MemoryRepository.Clear(ctx)
}

func newManager(t *testing.T, repo kv.Repository, scope string) (*Manager, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	m, err := NewManager(context.Background(), Options{
		Store:    repo,
		Auth:     services.NewAuthService(repo, logging.Nop(), false),
		Progress: services.NewProgressService(repo, logging.Nop(), scope),
		Catalog:  catalog.Default(),
		Renderer: r,
	})
	require.NoError(t, err)
	return m, r
}

func TestNewManager_RequiresCollaborators(t *testing.T) {
	_, err := NewManager(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNewManager_InitialView(t *testing.T) {
	ctx := context.Background()

	repo := kv.NewMemoryRepository()
	m, r := newManager(t, repo, config.ScopeGlobal)
	assert.Equal(t, ViewAuth, m.View())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, r.snapshots, "hydration does not render")

	require.NoError(t, repo.Set(ctx, services.KeyCurrentUser, "alice"))
	require.NoError(t, repo.Set(ctx, services.KeyCompletedCourses, "[3,42,1]"))
	m, _ = newManager(t, repo, config.ScopeGlobal)

	assert.Equal(t, ViewDashboard, m.View())
	user, ok := m.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, []int{3, 1}, m.Snapshot().Completed, "unknown ids are dropped")
}

func TestNewManager_StorageError(t *testing.T) {
	_, err := NewManager(context.Background(), Options{
		Store:    kv.NewMemoryRepository(),
		Auth:     failingSession{},
		Progress: services.NewProgressService(kv.NewMemoryRepository(), logging.Nop(), config.ScopeGlobal),
		Catalog:  catalog.Default(),
	})
	assert.ErrorIs(t, err, errWrite)
}

type failingSession struct{ services.AuthService }

func (failingSession) LoadSession(context.Context) (string, bool, error) {
	return "", false, errWrite
}

func TestManager_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	m, r := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	assert.Equal(t, ViewAuth, m.View(), "signup does not log in")
	_, ok := m.CurrentUser()
	assert.False(t, ok)

	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	assert.Equal(t, ViewDashboard, m.View())
	s := r.last(t)
	assert.Equal(t, ViewDashboard, s.View)
	assert.Equal(t, "alice", s.User)
	assert.Len(t, s.Courses, 3)
}

func TestManager_SignupThenLoginWithHashPrefixedPassword(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "carol", "argon2id$hello"))
	require.NoError(t, m.Login(ctx, "carol", "argon2id$hello"))
	assert.Equal(t, ViewDashboard, m.View())
}

func TestManager_SignupDuplicate(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.ErrorIs(t, m.Signup(ctx, "alice", "pw2"), common.ErrUserExists)

	require.ErrorIs(t, m.Login(ctx, "alice", "pw2"), common.ErrInvalidCredentials)
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
}

func TestManager_LoginWrongPasswordKeepsSession(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, r := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	rendered := len(r.snapshots)

	require.ErrorIs(t, m.Login(ctx, "alice", "nope"), common.ErrInvalidCredentials)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, ViewAuth, m.View())
	assert.Len(t, r.snapshots, rendered, "failed intents do not render")

	_, ok, _ = repo.Get(ctx, services.KeyCurrentUser)
	assert.False(t, ok)
}

func TestManager_LoginWithoutSignup(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	require.ErrorIs(t, m.Login(ctx, "bob", "x"), common.ErrInvalidCredentials)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestManager_MissingFields(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	assert.ErrorIs(t, m.Signup(ctx, " ", "pw"), common.ErrMissingFields)
	assert.ErrorIs(t, m.Login(ctx, "alice", ""), common.ErrMissingFields)
}

func TestManager_CourseScenario(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, r := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	require.NoError(t, m.SelectCourse(ctx, 2))
	assert.Equal(t, ViewCourseDetail, m.View())
	sel, ok := m.SelectedCourse()
	require.True(t, ok)
	assert.Equal(t, "CSS for Beginners", sel.Title)

	done, err := m.ToggleCompletion(ctx, 2)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, m.IsComplete(2))

	s := r.last(t)
	assert.Equal(t, ViewCourseDetail, s.View, "toggle re-renders the detail view")
	require.NotNil(t, s.Selected)
	assert.Equal(t, 2, s.Selected.ID)
	assert.True(t, s.IsComplete(2))

	raw, _, _ := repo.Get(ctx, services.KeyCompletedCourses)
	assert.Equal(t, "[2]", raw)

	done, err = m.ToggleCompletion(ctx, 2)
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, m.IsComplete(2))
	raw, _, _ = repo.Get(ctx, services.KeyCompletedCourses)
	assert.Equal(t, "[]", raw)

	require.NoError(t, m.Back(ctx))
	assert.Equal(t, ViewDashboard, m.View())
	_, ok = m.SelectedCourse()
	assert.False(t, ok)
}

func TestManager_DoubleToggleRestoresSet(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, services.KeyCurrentUser, "alice"))
	require.NoError(t, repo.Set(ctx, services.KeyCompletedCourses, "[1,3]"))
	m, _ := newManager(t, repo, config.ScopeGlobal)

	before := m.Snapshot().Completed
	for _, id := range []int{1, 2, 3} {
		_, err := m.ToggleCompletion(ctx, id)
		require.NoError(t, err)
		_, err = m.ToggleCompletion(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, before, m.Snapshot().Completed)
	}
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, r := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	require.NoError(t, m.SelectCourse(ctx, 1))
	_, err := m.ToggleCompletion(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, ViewAuth, m.View())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Nil(t, r.last(t).Selected)

	_, ok, _ = repo.Get(ctx, services.KeyCurrentUser)
	assert.False(t, ok, "session key removed")
	assert.True(t, m.IsComplete(1), "global completions survive logout")

	require.NoError(t, m.Logout(ctx), "logout from auth is allowed")
}

func TestManager_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, kv.NewMemoryRepository(), config.ScopeGlobal)

	// auth
	assert.ErrorIs(t, m.SelectCourse(ctx, 1), common.ErrInvalidTransition)
	assert.ErrorIs(t, m.Back(ctx), common.ErrInvalidTransition)
	_, err := m.ToggleCompletion(ctx, 1)
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))

	// dashboard
	assert.ErrorIs(t, m.Login(ctx, "alice", "pw1"), common.ErrInvalidTransition)
	assert.ErrorIs(t, m.Signup(ctx, "bob", "pw"), common.ErrInvalidTransition)
	assert.ErrorIs(t, m.Back(ctx), common.ErrInvalidTransition)
	assert.ErrorIs(t, m.SelectCourse(ctx, 99), common.ErrCourseNotFound)
	assert.Equal(t, ViewDashboard, m.View())

	// detail
	require.NoError(t, m.SelectCourse(ctx, 3))
	assert.ErrorIs(t, m.SelectCourse(ctx, 1), common.ErrInvalidTransition)
	_, err = m.ToggleCompletion(ctx, 99)
	assert.ErrorIs(t, err, common.ErrCourseNotFound)
	assert.Equal(t, ViewCourseDetail, m.View())
}

func TestManager_ToggleFromDashboard(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, services.KeyCurrentUser, "alice"))
	m, r := newManager(t, repo, config.ScopeGlobal)

	done, err := m.ToggleCompletion(ctx, 3)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, ViewDashboard, r.last(t).View)
}

func TestManager_WriteFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := &brokenWrites{MemoryRepository: kv.NewMemoryRepository()}
	m, r := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	_, err := m.ToggleCompletion(ctx, 1)
	require.NoError(t, err)
	rendered := len(r.snapshots)

	repo.armed = true

	done, err := m.ToggleCompletion(ctx, 1)
	require.ErrorIs(t, err, errWrite)
	assert.True(t, done, "reports the unchanged state")
	assert.True(t, m.IsComplete(1))

	require.ErrorIs(t, m.Logout(ctx), errWrite)
	user, ok := m.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, ViewDashboard, m.View())

	require.ErrorIs(t, m.Reset(ctx), errWrite)
	assert.Equal(t, ViewDashboard, m.View())
	assert.Len(t, r.snapshots, rendered)
}

func TestManager_UserScope(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, _ := newManager(t, repo, config.ScopeUser)

	require.NoError(t, m.Signup(ctx, "alice", "a"))
	require.NoError(t, m.Signup(ctx, "bob", "b"))

	require.NoError(t, m.Login(ctx, "alice", "a"))
	_, err := m.ToggleCompletion(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsComplete(1), "per-user set is cleared on logout")

	require.NoError(t, m.Login(ctx, "bob", "b"))
	assert.False(t, m.IsComplete(1), "bob does not see alice's progress")
	require.NoError(t, m.Logout(ctx))

	require.NoError(t, m.Login(ctx, "alice", "a"))
	assert.True(t, m.IsComplete(1))

	raw, ok, _ := repo.Get(ctx, "completedCourses:alice")
	require.True(t, ok)
	assert.Equal(t, "[1]", raw)
	_, ok, _ = repo.Get(ctx, services.KeyCompletedCourses)
	assert.False(t, ok)

	// a restart with a live session hydrates that user's set
	m2, _ := newManager(t, repo, config.ScopeUser)
	assert.True(t, m2.IsComplete(1))
}

func TestManager_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, _ := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	_, err := m.ToggleCompletion(ctx, 2)
	require.NoError(t, err)

	restarted, _ := newManager(t, repo, config.ScopeGlobal)
	assert.Equal(t, ViewDashboard, restarted.View())
	assert.True(t, restarted.IsComplete(2))
}

func TestManager_Reset(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, r := newManager(t, repo, config.ScopeGlobal)

	require.NoError(t, m.Signup(ctx, "alice", "pw1"))
	require.NoError(t, m.Login(ctx, "alice", "pw1"))
	_, err := m.ToggleCompletion(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, m.Reset(ctx))
	assert.Equal(t, ViewAuth, r.last(t).View)
	assert.False(t, m.IsComplete(2))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.ErrorIs(t, m.Login(ctx, "alice", "pw1"), common.ErrInvalidCredentials)
}

func TestManager_NilRendererAndLogger(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	m, err := NewManager(ctx, Options{
		Store:    repo,
		Auth:     services.NewAuthService(repo, logging.Nop(), false),
		Progress: services.NewProgressService(repo, logging.Nop(), config.ScopeGlobal),
		Catalog:  catalog.Default(),
	})
	require.NoError(t, err)

	require.NoError(t, m.Signup(ctx, "a", "b"))
	require.NoError(t, m.Login(ctx, "a", "b"))
	m.Render(ctx)
}

package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/client/catalog"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/client/services"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
)

// Renderer draws a snapshot. It is called after every successful intent.
type Renderer interface {
	Render(ctx context.Context, s Snapshot)
}

// Options wires a Manager. Renderer and Logger may be nil.
type Options struct {
	Store    kv.Repository
	Auth     services.AuthService
	Progress services.ProgressService
	Catalog  *catalog.Catalog
	Renderer Renderer
	Logger   logging.Logger
}

// Manager is not safe for concurrent use; intents are expected one at a time.
type Manager struct {
	store    kv.Repository
	auth     services.AuthService
	progress services.ProgressService
	catalog  *catalog.Catalog
	renderer Renderer
	log      logging.Logger

	view      View
	user      string
	completed *services.CompletionSet
	selected  int
}

// NewManager hydrates a Manager from the store. With a persisted session the
// initial view is the dashboard, otherwise the auth screen. Stored course ids
// the catalog does not know are dropped with a warning.
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Store == nil || opts.Auth == nil || opts.Progress == nil || opts.Catalog == nil {
		return nil, errors.New("state: store, auth, progress and catalog are required")
	}
	m := &Manager{
		store:     opts.Store,
		auth:      opts.Auth,
		progress:  opts.Progress,
		catalog:   opts.Catalog,
		renderer:  opts.Renderer,
		log:       opts.Logger,
		view:      ViewAuth,
		completed: services.NewCompletionSet(),
	}
	if m.log == nil {
		m.log = logging.Nop()
	}

	user, ok, err := m.auth.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		m.user = user
		m.view = ViewDashboard
	}

	completed, err := m.loadCompletions(ctx, m.user)
	if err != nil {
		return nil, err
	}
	m.completed = completed

	m.log.Debug(ctx, "state hydrated", "view", m.view, "user", m.user, "completed", m.completed.Len())
	return m, nil
}

func (m *Manager) loadCompletions(ctx context.Context, user string) (*services.CompletionSet, error) {
	set, err := m.progress.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	kept, dropped := set.Filter(m.catalog.Has)
	if len(dropped) > 0 {
		m.log.Warn(ctx, "ignoring completions for unknown courses", "ids", dropped)
	}
	return kept, nil
}

func (m *Manager) require(intent string, allowed View) error {
	if m.view != allowed {
		return fmt.Errorf("%w: %s is not available in %s", common.ErrInvalidTransition, intent, m.view)
	}
	return nil
}

// Signup registers a new account. It does not log the user in.
func (m *Manager) Signup(ctx context.Context, username, password string) error {
	if err := m.require("signup", ViewAuth); err != nil {
		return err
	}
	if err := m.auth.Register(ctx, username, password); err != nil {
		m.log.Debug(ctx, "signup rejected", "error", err)
		return err
	}
	m.log.Info(ctx, "user signed up")
	m.Render(ctx)
	return nil
}

// Login checks credentials, persists the session and opens the dashboard.
// A failed login leaves the session untouched.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if err := m.require("login", ViewAuth); err != nil {
		return err
	}

	user, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		m.log.Debug(ctx, "login rejected", "error", err)
		return err
	}

	completed := m.completed
	if m.progress.PerUser() {
		if completed, err = m.loadCompletions(ctx, user); err != nil {
			return err
		}
	}
	if err := m.auth.SaveSession(ctx, user); err != nil {
		return err
	}

	m.user = user
	m.completed = completed
	m.view = ViewDashboard
	m.log.Info(ctx, "user logged in", "user", user)
	m.Render(ctx)
	return nil
}

// Logout clears the session from any view and returns to the auth screen.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.auth.ClearSession(ctx); err != nil {
		return err
	}

	prev := m.user
	m.user = ""
	m.selected = 0
	m.view = ViewAuth
	if m.progress.PerUser() {
		m.completed = services.NewCompletionSet()
	}
	m.log.Info(ctx, "user logged out", "user", prev)
	m.Render(ctx)
	return nil
}

// SelectCourse opens the detail view for id.
func (m *Manager) SelectCourse(ctx context.Context, id int) error {
	if err := m.require("select course", ViewDashboard); err != nil {
		return err
	}
	if !m.catalog.Has(id) {
		return fmt.Errorf("%w: %d", common.ErrCourseNotFound, id)
	}

	m.selected = id
	m.view = ViewCourseDetail
	m.Render(ctx)
	return nil
}

// Back returns from the detail view to the dashboard.
func (m *Manager) Back(ctx context.Context) error {
	if err := m.require("back", ViewCourseDetail); err != nil {
		return err
	}

	m.selected = 0
	m.view = ViewDashboard
	m.Render(ctx)
	return nil
}

// ToggleCompletion flips the completion mark of id and reports whether the
// course is now complete. The current view is re-rendered, so an open
// detail view shows the new state.
func (m *Manager) ToggleCompletion(ctx context.Context, id int) (bool, error) {
	if m.user == "" {
		return false, common.ErrNotLoggedIn
	}
	if !m.catalog.Has(id) {
		return false, fmt.Errorf("%w: %d", common.ErrCourseNotFound, id)
	}

	next := m.completed.Clone()
	done := next.Toggle(id)
	if err := m.progress.Save(ctx, m.user, next); err != nil {
		return m.completed.Has(id), err
	}

	m.completed = next
	m.log.Info(ctx, "completion toggled", "course", id, "complete", done)
	m.Render(ctx)
	return done, nil
}

// Reset wipes the whole store and returns to the auth screen.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}

	m.user = ""
	m.selected = 0
	m.view = ViewAuth
	m.completed = services.NewCompletionSet()
	m.log.Warn(ctx, "store reset")
	m.Render(ctx)
	return nil
}

func (m *Manager) IsComplete(id int) bool {
	return m.completed.Has(id)
}

func (m *Manager) View() View {
	return m.view
}

func (m *Manager) CurrentUser() (string, bool) {
	return m.user, m.user != ""
}

// SelectedCourse returns the course open in the detail view.
func (m *Manager) SelectedCourse() (catalog.Course, bool) {
	if m.view != ViewCourseDetail {
		return catalog.Course{}, false
	}
	return m.catalog.Get(m.selected)
}

func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		View:      m.view,
		User:      m.user,
		Courses:   m.catalog.List(),
		Completed: m.completed.IDs(),
	}
	if c, ok := m.SelectedCourse(); ok {
		s.Selected = &c
	}
	return s
}

// Render hands the current snapshot to the renderer, if any.
func (m *Manager) Render(ctx context.Context) {
	if m.renderer != nil {
		m.renderer.Render(ctx, m.Snapshot())
	}
}

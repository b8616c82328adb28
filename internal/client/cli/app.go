package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/coursekeeper/internal/client/catalog"
	"github.com/dmitrijs2005/coursekeeper/internal/client/config"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/client/services"
	"github.com/dmitrijs2005/coursekeeper/internal/client/state"
	"github.com/dmitrijs2005/coursekeeper/internal/client/storage"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/google/uuid"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   kv.Repository
	closer  io.Closer
	manager *state.Manager
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the store named by c, loads the catalog and hydrates the
// state manager. Logs go to stderr tagged with a per-run id.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	logger = logger.With("run", uuid.NewString())

	store, closer, err := storage.Open(ctx, c)
	if err != nil {
		logger.Error(ctx, "error opening store", "driver", c.StorageDriver, "path", c.DataPath, "error", err)
		return nil, err
	}

	cat, err := loadCatalog(c.CatalogPath)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	app, err := newApp(ctx, c, logger, store, closer, cat, os.Stdin, os.Stdout)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, store kv.Repository,
	closer io.Closer, cat *catalog.Catalog, in io.Reader, out io.Writer,
) (*App, error) {
	m, err := state.NewManager(ctx, state.Options{
		Store:    store,
		Auth:     services.NewAuthService(store, logger, c.HashPasswords),
		Progress: services.NewProgressService(store, logger, c.CompletionScope),
		Catalog:  cat,
		Renderer: NewTextRenderer(out),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	return &App{
		config:  c,
		log:     logger,
		store:   store,
		closer:  closer,
		manager: m,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// Run draws the initial view and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	printlnFn("Welcome to coursekeeper (type 'help' for commands)")
	a.manager.Render(ctx)
	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
		a.closer = nil
	}
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return errors.Join(errs...)
}

func (a *App) prompt() string {
	user, ok := a.manager.CurrentUser()
	if !ok {
		return "ck>"
	}
	if c, open := a.manager.SelectedCourse(); open {
		return fmt.Sprintf("ck (%s) course %d>", user, c.ID)
	}
	return fmt.Sprintf("ck (%s)>", user)
}

func (a *App) view() state.View {
	return a.manager.View()
}

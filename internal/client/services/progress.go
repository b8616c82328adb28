package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/client/config"
	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
)

// ProgressService persists completion sets. In global scope every account
// shares one set; in user scope each username has its own key.
type ProgressService interface {
	Load(ctx context.Context, user string) (*CompletionSet, error)
	Save(ctx context.Context, user string, set *CompletionSet) error
	PerUser() bool
}

type progressService struct {
	repo  kv.Repository
	log   logging.Logger
	scope string
}

func NewProgressService(repo kv.Repository, log logging.Logger, scope string) ProgressService {
	return &progressService{repo: repo, log: log, scope: scope}
}

func (p *progressService) PerUser() bool {
	return p.scope == config.ScopeUser
}

// key returns the store key for user's set, or "" when the scope is per
// user and nobody is given.
func (p *progressService) key(user string) string {
	if !p.PerUser() {
		return KeyCompletedCourses
	}
	if user == "" {
		return ""
	}
	return KeyCompletedCourses + ":" + user
}

// Load reads the set. Absent and unreadable values both produce an empty
// set; the latter is logged.
func (p *progressService) Load(ctx context.Context, user string) (*CompletionSet, error) {
	key := p.key(user)
	if key == "" {
		return NewCompletionSet(), nil
	}

	raw, ok, err := p.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	ids, err := decodeIDs(key, raw, ok)
	if err != nil {
		p.log.Warn(ctx, "completion list is unreadable, starting empty", "key", key, "error", err)
	}
	return NewCompletionSet(ids...), nil
}

func (p *progressService) Save(ctx context.Context, user string, set *CompletionSet) error {
	key := p.key(user)
	if key == "" {
		return common.ErrNotLoggedIn
	}

	value, err := encodeIDs(set.IDs())
	if err != nil {
		return err
	}
	if err := p.repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

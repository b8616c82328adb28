package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/cryptox"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
)

// AuthService manages the credential mapping and the persisted session.
//
// Contract:
//   - Register: add a username/password pair. Fails with
//     common.ErrMissingFields or common.ErrUserExists.
//   - Authenticate: check a pair and return the trimmed username. Fails with
//     common.ErrMissingFields or common.ErrInvalidCredentials.
//   - SaveSession / LoadSession / ClearSession: the currentUser key.
//
// Storage failures are returned wrapped.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
	SaveSession(ctx context.Context, username string) error
	LoadSession(ctx context.Context) (string, bool, error)
	ClearSession(ctx context.Context) error
}

type authService struct {
	repo          kv.Repository
	log           logging.Logger
	hashPasswords bool
}

// NewAuthService constructs an AuthService over repo. With hashPasswords
// set, new records are stored as argon2id hashes instead of plaintext.
func NewAuthService(repo kv.Repository, log logging.Logger, hashPasswords bool) AuthService {
	return &authService{repo: repo, log: log, hashPasswords: hashPasswords}
}

func normalizeCredentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", "", common.ErrMissingFields
	}
	return username, password, nil
}

// Register inserts the pair in a single read-modify-write of the users key,
// so a duplicate check and the insert cannot interleave with another write.
func (a *authService) Register(ctx context.Context, username, password string) error {
	username, password, err := normalizeCredentials(username, password)
	if err != nil {
		return err
	}

	// A plaintext password shaped like a hash record is hashed regardless of
	// mode so every prefixed record in the store is a real hash.
	record := password
	if a.hashPasswords || cryptox.IsHashed(password) {
		record = cryptox.HashPassword([]byte(password))
	}

	err = a.repo.Update(ctx, KeyUsers, func(old string, ok bool) (string, error) {
		users, err := decodeUsers(old, ok)
		if err != nil {
			a.log.Warn(ctx, "credential mapping is unreadable, starting empty", "error", err)
		}
		if _, exists := users[username]; exists {
			return "", common.ErrUserExists
		}
		users[username] = record
		return encodeUsers(users)
	})
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			return err
		}
		return fmt.Errorf("register %s: %w", username, err)
	}
	return nil
}

func (a *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	username, password, err := normalizeCredentials(username, password)
	if err != nil {
		return "", err
	}

	raw, ok, err := a.repo.Get(ctx, KeyUsers)
	if err != nil {
		return "", fmt.Errorf("load users: %w", err)
	}
	users, err := decodeUsers(raw, ok)
	if err != nil {
		a.log.Warn(ctx, "credential mapping is unreadable, treating as empty", "error", err)
	}

	record, found := users[username]
	if !found || !cryptox.VerifyPassword(record, []byte(password)) {
		return "", common.ErrInvalidCredentials
	}
	return username, nil
}

func (a *authService) SaveSession(ctx context.Context, username string) error {
	if err := a.repo.Set(ctx, KeyCurrentUser, username); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the persisted username. An empty stored value counts
// as no session.
func (a *authService) LoadSession(ctx context.Context) (string, bool, error) {
	user, ok, err := a.repo.Get(ctx, KeyCurrentUser)
	if err != nil {
		return "", false, fmt.Errorf("load session: %w", err)
	}
	if !ok || user == "" {
		return "", false, nil
	}
	return user, true, nil
}

func (a *authService) ClearSession(ctx context.Context) error {
	if err := a.repo.Remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

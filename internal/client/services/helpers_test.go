package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/coursekeeper/internal/client/repositories/kv"
)

var errBoom = errors.New("boom")

// failingRepo wraps a MemoryRepository and fails the operations named in
// failOn.
type failingRepo struct {
	*kv.MemoryRepository
	failOn map[string]bool
}

func newFailingRepo(ops ...string) *failingRepo {
	f := &failingRepo{MemoryRepository: kv.NewMemoryRepository(), failOn: map[string]bool{}}
	for _, op := range ops {
		f.failOn[op] = true
	}
	return f
}

func (f *failingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failOn["get"] {
		return "", false, errBoom
	}
	return f.MemoryRepository.Get(ctx, key)
}

func (f *failingRepo) Set(ctx context.Context, key, value string) error {
	if f.failOn["set"] {
		return errBoom
	}
	return f.MemoryRepository.Set(ctx, key, value)
}

func (f *failingRepo) Remove(ctx context.Context, key string) error {
	if f.failOn["remove"] {
		return errBoom
	}
	return f.MemoryRepository.Remove(ctx, key)
}

func (f *failingRepo) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	if f.failOn["update"] {
		return errBoom
	}
	return f.MemoryRepository.Update(ctx, key, fn)
}

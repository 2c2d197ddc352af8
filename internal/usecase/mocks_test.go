package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/oxoxo-backend/internal/entity"
	"github.com/rocketscienceinc/oxoxo-backend/internal/repository"
)

type mockGameRepo struct {
	mock.Mock
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{}
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)

	if lookup, ok := args.Get(0).(func(context.Context, string) *entity.Game); ok {
		return lookup(ctx, id), args.Error(1)
	}

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func (that *mockGameRepo) ListIDs(ctx context.Context) ([]string, error) {
	args := that.Called(ctx)

	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (that *mockGameRepo) Lock(ctx context.Context, id string) (repository.Lock, error) {
	args := that.Called(ctx, id)

	lock, _ := args.Get(0).(repository.Lock)
	return lock, args.Error(1)
}

type mockLock struct {
	mock.Mock
}

func (that *mockLock) Extend(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

func (that *mockLock) Release(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

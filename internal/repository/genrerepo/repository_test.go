package genrerepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
	"govidly/internal/repository/genrerepo"
)

// MockCache é uma implementação mock de cache.Client.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func newRepo(t *testing.T, c cache.Client) (*genrerepo.GenreRepository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return genrerepo.NewGenreRepository(db, c, time.Second, time.Minute, logger.NewNop()), sqlMock
}

func TestFindByID_CacheHitSkipsDB(t *testing.T) {
	mockCache := new(MockCache)
	repo, sqlMock := newRepo(t, mockCache)

	mockCache.On("Get", mock.Anything, "genre:g1").Return(`{"id":"g1","name":"Action"}`, nil)

	genre, err := repo.FindByID(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, domain.Genre{ID: "g1", Name: "Action"}, genre)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	mockCache.AssertExpectations(t)
}

func TestFindByID_CacheMissPopulatesCache(t *testing.T) {
	mockCache := new(MockCache)
	repo, sqlMock := newRepo(t, mockCache)

	mockCache.On("Get", mock.Anything, "genre:g1").Return("", cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, "genre:g1", mock.Anything, time.Minute).Return(nil)
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM genres WHERE id = $1")).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("g1", "Action"))

	genre, err := repo.FindByID(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, "Action", genre.Name)
	mockCache.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, sqlMock := newRepo(t, cache.NoopClient{})

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM genres WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByID(context.Background(), "g1")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	mockCache := new(MockCache)
	repo, sqlMock := newRepo(t, mockCache)

	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE genres SET name = $2 WHERE id = $1")).
		WithArgs("g1", "Thriller").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("g1", "Thriller"))
	mockCache.On("Delete", mock.Anything, []string{"genre:g1"}).Return(nil)

	genre, err := repo.Update(context.Background(), domain.Genre{ID: "g1", Name: "Thriller"})

	require.NoError(t, err)
	assert.Equal(t, "Thriller", genre.Name)
	mockCache.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo, sqlMock := newRepo(t, cache.NoopClient{})

	sqlMock.ExpectQuery(regexp.QuoteMeta("DELETE FROM genres")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.Delete(context.Background(), "g1")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

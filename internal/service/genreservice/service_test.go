package genreservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/validation"
	"govidly/internal/service/genreservice"
)

type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Save(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindByID(ctx context.Context, id string) (domain.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) Update(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(domain.Genre), args.Error(1)
}

func (m *MockGenreRepository) Delete(ctx context.Context, id string) (domain.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Genre), args.Error(1)
}

func newService() (*genreservice.Service, *MockGenreRepository) {
	repo := new(MockGenreRepository)
	return genreservice.NewService(repo, validation.New(), logger.NewNop()), repo
}

func TestCreate_TrimsName(t *testing.T) {
	svc, repo := newService()
	repo.On("Save", mock.Anything, domain.Genre{Name: "Thriller"}).Return(domain.Genre{ID: "g1", Name: "Thriller"}, nil)

	genre, err := svc.Create(context.Background(), domain.GenreInput{Name: "  Thriller  "})

	require.NoError(t, err)
	assert.Equal(t, "g1", genre.ID)
	repo.AssertExpectations(t)
}

func TestCreate_NameTooShort(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), domain.GenreInput{Name: "War"})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, "name", apperror.Violations(err)[0].Field)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestList_RepoError(t *testing.T) {
	svc, repo := newService()
	repo.On("FindAll", mock.Anything).Return([]domain.Genre(nil), apperror.NewDBError("Falha ao listar gêneros", errors.New("boom")))

	_, err := svc.List(context.Background())

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestDelete_MalformedID(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Delete(context.Background(), "1234")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdate_Success(t *testing.T) {
	svc, repo := newService()
	id := uuid.NewString()
	repo.On("Update", mock.Anything, domain.Genre{ID: id, Name: "Comedy Gold"}).Return(domain.Genre{ID: id, Name: "Comedy Gold"}, nil)

	genre, err := svc.Update(context.Background(), id, domain.GenreInput{Name: "Comedy Gold"})

	require.NoError(t, err)
	assert.Equal(t, "Comedy Gold", genre.Name)
	repo.AssertExpectations(t)
}

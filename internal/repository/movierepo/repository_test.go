package movierepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/cache"
	"govidly/internal/pkg/logger"
	"govidly/internal/repository/movierepo"
)

var movieCols = []string{"id", "title", "genre", "number_in_stock", "daily_rental_rate"}

func newRepo(t *testing.T) (*movierepo.MovieRepository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return movierepo.NewMovieRepository(db, cache.NoopClient{}, time.Second, time.Minute, logger.NewNop()), sqlMock
}

func TestSave_EmbedsGenreSnapshot(t *testing.T) {
	repo, sqlMock := newRepo(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO movies")).
		WithArgs(sqlmock.AnyArg(), "Movie One", `{"id":"g1","name":"Action"}`, 10, 2.0).
		WillReturnRows(sqlmock.NewRows(movieCols).
			AddRow("m1", "Movie One", []byte(`{"id":"g1","name":"Action"}`), 10, 2.0))

	saved, err := repo.Save(context.Background(), domain.Movie{
		Title:           "Movie One",
		Genre:           domain.GenreSnapshot{ID: "g1", Name: "Action"},
		NumberInStock:   10,
		DailyRentalRate: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "m1", saved.ID)
	assert.Equal(t, domain.GenreSnapshot{ID: "g1", Name: "Action"}, saved.Genre)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, sqlMock := newRepo(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id = $1")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(movieCols))

	_, err := repo.FindByID(context.Background(), "m1")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindAll_OrderedByTitle(t *testing.T) {
	repo, sqlMock := newRepo(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM movies ORDER BY title")).
		WillReturnRows(sqlmock.NewRows(movieCols).
			AddRow("m1", "Alien Nation", []byte(`{"id":"g1","name":"Sci-Fi"}`), 3, 1.5).
			AddRow("m2", "Blade Runner", []byte(`{"id":"g1","name":"Sci-Fi"}`), 0, 2.0))

	movies, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Sci-Fi", movies[1].Genre.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, sqlMock := newRepo(t)

	sqlMock.ExpectQuery(regexp.QuoteMeta("UPDATE movies")).
		WillReturnRows(sqlmock.NewRows(movieCols))

	_, err := repo.Update(context.Background(), domain.Movie{ID: "m1", Title: "Movie One"})

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestCacheKey_CanonicalUUID(t *testing.T) {
	assert.Equal(t, "movie:0f8fad5b-d9cb-469f-a165-70867728950e", movierepo.CacheKey("0F8FAD5B-D9CB-469F-A165-70867728950E"))
	assert.Equal(t, "movie:0f8fad5b-d9cb-469f-a165-70867728950e", movierepo.CacheKey("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "movie:not-a-uuid", movierepo.CacheKey("not-a-uuid"))
}

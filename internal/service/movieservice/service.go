package movieservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// MovieRepository define o contrato que este Serviço espera da camada de Persistência.
type MovieRepository interface {
	Save(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	FindByID(ctx context.Context, id string) (domain.Movie, error)
	FindAll(ctx context.Context) ([]domain.Movie, error)
	Update(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	Delete(ctx context.Context, id string) (domain.Movie, error)
}

// GenreReader resolve o gênero referenciado por genreId.
type GenreReader interface {
	FindByID(ctx context.Context, id string) (domain.Genre, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// Service implementa as regras de negócio do catálogo de filmes.
type Service struct {
	repo      MovieRepository
	genres    GenreReader
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Filmes.
func NewService(repo MovieRepository, genres GenreReader, validator Validator, logger logger.Logger) *Service {
	return &Service{repo: repo, genres: genres, validator: validator, logger: logger}
}

// Create valida o payload, resolve o gênero e grava o filme com o snapshot do gênero.
func (s *Service) Create(ctx context.Context, input domain.MovieInput) (domain.Movie, error) {
	movie, err := s.build(ctx, input)
	if err != nil {
		return domain.Movie{}, err
	}

	created, err := s.repo.Save(ctx, movie)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme criado.", map[string]interface{}{"id": created.ID, "genre_id": created.Genre.ID})
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Movie{}, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.FindAll(ctx)
}

// Update substitui os dados do filme, inclusive o snapshot do gênero.
// Locações existentes mantêm o snapshot do filme da época da retirada.
func (s *Service) Update(ctx context.Context, id string, input domain.MovieInput) (domain.Movie, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Movie{}, err
	}

	movie, err := s.build(ctx, input)
	if err != nil {
		return domain.Movie{}, err
	}
	movie.ID = id

	return s.repo.Update(ctx, movie)
}

func (s *Service) Delete(ctx context.Context, id string) (domain.Movie, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Movie{}, err
	}

	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme removido.", map[string]interface{}{"id": id})
	return movie, nil
}

func (s *Service) build(ctx context.Context, input domain.MovieInput) (domain.Movie, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Movie{}, err
	}

	genre, err := s.resolveGenre(ctx, input.GenreID)
	if err != nil {
		return domain.Movie{}, err
	}

	return domain.Movie{
		Title:           input.Title,
		Genre:           genre.Snapshot(),
		NumberInStock:   *input.NumberInStock,
		DailyRentalRate: *input.DailyRentalRate,
	}, nil
}

func (s *Service) resolveGenre(ctx context.Context, id string) (domain.Genre, error) {
	notFound := apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Genre{}, notFound
	}

	genre, err := s.genres.FindByID(ctx, parsed.String())
	if err != nil {
		var nf *apperror.NotFoundError
		if errors.As(err, &nf) {
			return domain.Genre{}, notFound
		}
		return domain.Genre{}, err
	}
	return genre, nil
}

// checkID devolve o ID na forma canônica do UUID (minúsculas, com hífens).
func checkID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", id))
	}
	return parsed.String(), nil
}

package genreservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// GenreRepository define o contrato que este Serviço espera da camada de Persistência.
type GenreRepository interface {
	Save(ctx context.Context, genre domain.Genre) (domain.Genre, error)
	FindByID(ctx context.Context, id string) (domain.Genre, error)
	FindAll(ctx context.Context) ([]domain.Genre, error)
	Update(ctx context.Context, genre domain.Genre) (domain.Genre, error)
	Delete(ctx context.Context, id string) (domain.Genre, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// Service implementa as regras de negócio de gêneros.
type Service struct {
	repo      GenreRepository
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Gêneros.
func NewService(repo GenreRepository, validator Validator, logger logger.Logger) *Service {
	return &Service{repo: repo, validator: validator, logger: logger}
}

func (s *Service) Create(ctx context.Context, input domain.GenreInput) (domain.Genre, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Genre{}, err
	}

	genre, err := s.repo.Save(ctx, domain.Genre{Name: input.Name})
	if err != nil {
		return domain.Genre{}, err
	}

	s.logger.Info("Gênero criado.", map[string]interface{}{"id": genre.ID, "name": genre.Name})
	return genre, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Genre, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Genre{}, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Genre, error) {
	return s.repo.FindAll(ctx)
}

// Update renomeia o gênero. Filmes existentes mantêm o snapshot antigo.
func (s *Service) Update(ctx context.Context, id string, input domain.GenreInput) (domain.Genre, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Genre{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Genre{}, err
	}

	return s.repo.Update(ctx, domain.Genre{ID: id, Name: input.Name})
}

func (s *Service) Delete(ctx context.Context, id string) (domain.Genre, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Genre{}, err
	}

	genre, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Genre{}, err
	}

	s.logger.Info("Gênero removido.", map[string]interface{}{"id": id})
	return genre, nil
}

// checkID devolve o ID na forma canônica do UUID (minúsculas, com hífens).
func checkID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.NewNotFoundError(fmt.Sprintf("Gênero com ID %s não encontrado.", id))
	}
	return parsed.String(), nil
}

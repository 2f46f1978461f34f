package customerservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
)

// CustomerRepository define o contrato que este Serviço espera da camada de Persistência.
type CustomerRepository interface {
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	FindByID(ctx context.Context, id string) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id string) (domain.Customer, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// Service implementa as regras de negócio de clientes.
type Service struct {
	repo      CustomerRepository
	validator Validator
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Clientes.
func NewService(repo CustomerRepository, validator Validator, logger logger.Logger) *Service {
	return &Service{repo: repo, validator: validator, logger: logger}
}

// Create valida e persiste um novo cliente.
func (s *Service) Create(ctx context.Context, input domain.CustomerInput) (domain.Customer, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.Save(ctx, domain.Customer{Name: input.Name, Phone: input.Phone, IsGold: input.IsGold})
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.Info("Cliente criado.", map[string]interface{}{"id": customer.ID})
	return customer, nil
}

// GetByID busca um cliente. IDs mal formados são tratados como inexistentes.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	return s.repo.FindByID(ctx, id)
}

// List lista todos os clientes ordenados por nome.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

// Update substitui os dados do cliente. Locações já criadas mantêm o snapshot antigo.
func (s *Service) Update(ctx context.Context, id string, input domain.CustomerInput) (domain.Customer, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Customer{}, err
	}

	return s.repo.Update(ctx, domain.Customer{ID: id, Name: input.Name, Phone: input.Phone, IsGold: input.IsGold})
}

// Delete remove o cliente e devolve o registro removido.
func (s *Service) Delete(ctx context.Context, id string) (domain.Customer, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.Info("Cliente removido.", map[string]interface{}{"id": id})
	return customer, nil
}

// checkID devolve o ID na forma canônica do UUID (minúsculas, com hífens).
func checkID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", id))
	}
	return parsed.String(), nil
}

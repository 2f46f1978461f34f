package rentalservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/metrics"
)

// RentalRepository é o livro de locações visto por este Serviço.
// Checkout e Delete precisam ser atômicos em relação ao estoque do filme.
type RentalRepository interface {
	Checkout(ctx context.Context, customer domain.CustomerSnapshot, movieID string, dateOut time.Time) (domain.Rental, error)
	FindOpen(ctx context.Context, customerID, movieID string) (domain.Rental, error)
	FindAll(ctx context.Context, sort domain.RentalSort) ([]domain.Rental, error)
	FindByID(ctx context.Context, id string) (domain.Rental, error)
	UpdateDateOut(ctx context.Context, id string, dateOut time.Time) (domain.Rental, error)
	Delete(ctx context.Context, id string) (domain.Rental, error)
}

// CustomerReader resolve o cliente no momento da retirada.
type CustomerReader interface {
	FindByID(ctx context.Context, id string) (domain.Customer, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// Recorder registra o resultado das retiradas.
type Recorder interface {
	RecordCheckout(result string)
}

// Service implementa as operações do livro de locações.
type Service struct {
	rentals   RentalRepository
	customers CustomerReader
	validator Validator
	metrics   Recorder
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Locações.
func NewService(rentals RentalRepository, customers CustomerReader, validator Validator, recorder Recorder, logger logger.Logger) *Service {
	return &Service{
		rentals:   rentals,
		customers: customers,
		validator: validator,
		metrics:   recorder,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock substitui o relógio usado para a data de retirada.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Checkout cria uma locação aberta com os snapshots atuais do cliente e do filme,
// decrementando o estoque na mesma operação atômica.
func (s *Service) Checkout(ctx context.Context, input domain.RentalInput) (domain.Rental, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Rental{}, err
	}

	rental, err := s.checkout(ctx, input)
	if err != nil {
		s.metrics.RecordCheckout(metrics.ResultFailure)
		return domain.Rental{}, err
	}

	s.metrics.RecordCheckout(metrics.ResultSuccess)
	s.logger.Info("Retirada concluída.", map[string]interface{}{
		"rental_id":   rental.ID,
		"customer_id": rental.Customer.ID,
		"movie_id":    rental.Movie.ID,
	})
	return rental, nil
}

func (s *Service) checkout(ctx context.Context, input domain.RentalInput) (domain.Rental, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %s não encontrado.", input.CustomerID))
	}
	movieID, err := uuid.Parse(input.MovieID)
	if err != nil {
		return domain.Rental{}, apperror.NewNotFoundError(fmt.Sprintf("Filme com ID %s não encontrado.", input.MovieID))
	}

	customer, err := s.customers.FindByID(ctx, customerID.String())
	if err != nil {
		return domain.Rental{}, err
	}

	return s.rentals.Checkout(ctx, customer.Snapshot(), movieID.String(), s.now())
}

// LookupOpenRental devolve a locação aberta do par cliente/filme.
// Locações já devolvidas nunca são consideradas.
func (s *Service) LookupOpenRental(ctx context.Context, customerID, movieID string) (domain.Rental, error) {
	customerID, movieID, ok := canonicalPair(customerID, movieID)
	if !ok {
		return domain.Rental{}, apperror.NewRentalNotFoundError("Nenhuma locação aberta para este cliente e filme.")
	}
	return s.rentals.FindOpen(ctx, customerID, movieID)
}

// List lista as locações pela data de retirada; vazio equivale a "-dateOut".
func (s *Service) List(ctx context.Context, sortParam string) ([]domain.Rental, error) {
	sort, err := domain.ParseRentalSort(sortParam)
	if err != nil {
		return nil, err
	}
	return s.rentals.FindAll(ctx, sort)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Rental, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Rental{}, err
	}
	return s.rentals.FindByID(ctx, id)
}

// UpdateDateOut corrige a data de retirada de uma locação aberta.
// Datas futuras são rejeitadas.
func (s *Service) UpdateDateOut(ctx context.Context, id string, input domain.RentalDateOutInput) (domain.Rental, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Rental{}, err
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Rental{}, err
	}

	dateOut := input.DateOut.UTC()
	if dateOut.After(s.now()) {
		return domain.Rental{}, apperror.NewFieldValidationError("A data de retirada não pode estar no futuro.", []apperror.FieldViolation{
			{Field: "dateOut", Rule: "lte_now", Message: "dateOut não pode estar no futuro."},
		})
	}

	rental, err := s.rentals.UpdateDateOut(ctx, id, dateOut)
	if err != nil {
		return domain.Rental{}, err
	}

	s.logger.Info("Data de retirada corrigida.", map[string]interface{}{"rental_id": id})
	return rental, nil
}

// Delete remove a locação; se ainda aberta, o exemplar volta ao estoque.
func (s *Service) Delete(ctx context.Context, id string) (domain.Rental, error) {
	id, err := checkID(id)
	if err != nil {
		return domain.Rental{}, err
	}

	rental, err := s.rentals.Delete(ctx, id)
	if err != nil {
		return domain.Rental{}, err
	}

	s.logger.Info("Locação removida.", map[string]interface{}{"rental_id": id, "was_open": rental.IsOpen()})
	return rental, nil
}

// canonicalPair devolve os dois IDs na forma canônica do UUID.
func canonicalPair(customerID, movieID string) (string, string, bool) {
	customer, errCustomer := uuid.Parse(customerID)
	movie, errMovie := uuid.Parse(movieID)
	if errCustomer != nil || errMovie != nil {
		return "", "", false
	}
	return customer.String(), movie.String(), true
}

func checkID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.NewNotFoundError(fmt.Sprintf("Locação com ID %s não encontrada.", id))
	}
	return parsed.String(), nil
}

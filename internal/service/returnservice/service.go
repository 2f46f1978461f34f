package returnservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"govidly/internal/domain"
	apperror "govidly/internal/errors"
	"govidly/internal/pkg/logger"
	"govidly/internal/pkg/metrics"
)

// RentalSettler encontra e fecha a locação do par cliente/filme e repõe o
// estoque como uma única operação atômica.
type RentalSettler interface {
	Settle(ctx context.Context, customerID, movieID string, close func(*domain.Rental) error) (domain.Rental, error)
}

// Validator valida payloads de entrada.
type Validator interface {
	Validate(ctx context.Context, i interface{}) error
}

// Recorder registra o resultado das devoluções.
type Recorder interface {
	RecordReturn(result string, fee float64)
}

// Service processa devoluções de filmes.
type Service struct {
	rentals   RentalSettler
	validator Validator
	metrics   Recorder
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Devoluções.
func NewService(rentals RentalSettler, validator Validator, recorder Recorder, logger logger.Logger) *Service {
	return &Service{
		rentals:   rentals,
		validator: validator,
		metrics:   recorder,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock substitui o relógio usado na data de devolução.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Settle fecha a locação do par: calcula a taxa por dias inteiros decorridos
// vezes a diária do snapshot, grava a devolução e devolve o exemplar ao estoque.
// Falha com RENTAL_NOT_FOUND se o par não tem locação e com ALREADY_PROCESSED
// se ela já foi devolvida.
func (s *Service) Settle(ctx context.Context, input domain.ReturnInput) (domain.Rental, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return domain.Rental{}, err
	}

	customerID, errCustomer := uuid.Parse(input.CustomerID)
	movieID, errMovie := uuid.Parse(input.MovieID)
	if errCustomer != nil || errMovie != nil {
		return domain.Rental{}, apperror.NewRentalNotFoundError("Locação não encontrada para este cliente e filme.")
	}

	now := s.now()
	rental, err := s.rentals.Settle(ctx, customerID.String(), movieID.String(), func(r *domain.Rental) error {
		return r.Return(now)
	})
	if err != nil {
		s.metrics.RecordReturn(metrics.ResultFailure, 0)
		if apperror.HasCategory(err, apperror.CategoryAlreadyProcessed) {
			s.logger.Warn("Devolução repetida rejeitada.", map[string]interface{}{
				"customer_id": customerID.String(),
				"movie_id":    movieID.String(),
			})
		}
		return domain.Rental{}, err
	}

	s.metrics.RecordReturn(metrics.ResultSuccess, *rental.RentalFee)
	s.logger.Info("Devolução concluída.", map[string]interface{}{
		"rental_id": rental.ID,
		"days":      domain.RentalDays(rental.DateOut, *rental.DateIn),
		"fee":       *rental.RentalFee,
	})
	return rental, nil
}

package domain

import (
	"time"

	apperror "govidly/internal/errors"
)

// Rental é o registro central do livro de locações.
// Customer e Movie são cópias imutáveis capturadas na retirada.
// DateIn e RentalFee ficam ausentes enquanto a locação está aberta
// e são definidos juntos, uma única vez, na devolução.
type Rental struct {
	ID        string           `json:"id"`
	Customer  CustomerSnapshot `json:"customer"`
	Movie     MovieSnapshot    `json:"movie"`
	DateOut   time.Time        `json:"dateOut"`
	DateIn    *time.Time       `json:"dateIn,omitempty"`
	RentalFee *float64         `json:"rentalFee,omitempty"`
}

// NewRental monta uma locação aberta a partir dos snapshots atuais.
func NewRental(id string, customer CustomerSnapshot, movie MovieSnapshot, dateOut time.Time) Rental {
	return Rental{ID: id, Customer: customer, Movie: movie, DateOut: dateOut}
}

// IsOpen informa se a locação ainda não foi devolvida.
func (r Rental) IsOpen() bool {
	return r.DateIn == nil
}

// Return fecha a locação em now, calculando a taxa pela regra de dias inteiros.
func (r *Rental) Return(now time.Time) error {
	if !r.IsOpen() {
		return apperror.NewAlreadyProcessedError("Devolução já processada para esta locação.")
	}

	fee := RentalFee(RentalDays(r.DateOut, now), r.Movie.DailyRentalRate)
	returnedAt := now
	r.DateIn = &returnedAt
	r.RentalFee = &fee
	return nil
}

// RentalDays retorna os dias inteiros decorridos entre a retirada e a devolução.
// Frações de dia são truncadas: devoluções em menos de 24h contam 0 dias.
func RentalDays(dateOut, dateIn time.Time) int {
	elapsed := dateIn.Sub(dateOut)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// RentalFee multiplica os dias cobrados pela diária do snapshot do filme.
func RentalFee(days int, dailyRate float64) float64 {
	if days <= 0 || dailyRate <= 0 {
		return 0
	}
	return float64(days) * dailyRate
}

// RentalSort define a ordenação da listagem de locações pela data de retirada.
type RentalSort string

const (
	SortDateOutDesc RentalSort = "-dateOut" // padrão: mais recentes primeiro
	SortDateOutAsc  RentalSort = "dateOut"
)

// ParseRentalSort converte o parâmetro "sort" da query string.
func ParseRentalSort(raw string) (RentalSort, error) {
	switch RentalSort(raw) {
	case "", SortDateOutDesc:
		return SortDateOutDesc, nil
	case SortDateOutAsc:
		return SortDateOutAsc, nil
	default:
		return "", apperror.NewFieldValidationError("Ordenação inválida.", []apperror.FieldViolation{
			{Field: "sort", Rule: "oneof", Message: "sort deve ser 'dateOut' ou '-dateOut'."},
		})
	}
}

// RentalInput é o payload de retirada (POST /rentals).
type RentalInput struct {
	CustomerID string `json:"customerId" validate:"required"`
	MovieID    string `json:"movieId" validate:"required"`
}

// ReturnInput é o payload de devolução (POST /returns).
type ReturnInput struct {
	CustomerID string `json:"customerId" validate:"required"`
	MovieID    string `json:"movieId" validate:"required"`
}

// RentalDateOutInput é o payload de correção administrativa da data de retirada.
type RentalDateOutInput struct {
	DateOut *time.Time `json:"dateOut" validate:"required"`
}

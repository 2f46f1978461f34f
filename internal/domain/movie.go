package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// Movie representa um filme do catálogo com seu estoque disponível.
// O gênero é embutido por valor no momento da criação ou atualização do filme.
type Movie struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Genre           GenreSnapshot `json:"genre"`
	NumberInStock   int           `json:"numberInStock"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
}

// MovieInput é o payload de criação e atualização de filmes.
// Campos numéricos são ponteiros para que "required" distinga zero de ausente.
type MovieInput struct {
	Title           string   `json:"title" validate:"required,min=5,max=50"`
	GenreID         string   `json:"genreId" validate:"required"`
	NumberInStock   *int     `json:"numberInStock" validate:"required,min=0,max=10000"`
	DailyRentalRate *float64 `json:"dailyRentalRate" validate:"required,min=0"`
}

// MovieSnapshot é a cópia do filme embutida em uma locação no momento da retirada.
type MovieSnapshot struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DailyRentalRate float64 `json:"dailyRentalRate"`
}

// Snapshot retorna uma cópia por valor do estado atual do filme.
func (m Movie) Snapshot() MovieSnapshot {
	return MovieSnapshot{ID: m.ID, Title: m.Title, DailyRentalRate: m.DailyRentalRate}
}

func (s MovieSnapshot) Value() (driver.Value, error) {
	return marshalJSON(s)
}

func (s *MovieSnapshot) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// marshalJSON devolve string: o lib/pq envia []byte como bytea, não como JSONB.
func marshalJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

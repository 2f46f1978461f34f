package domain

import "database/sql/driver"

// Genre representa um gênero de filme do catálogo.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreInput é o payload de criação e atualização de gêneros.
type GenreInput struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

// GenreSnapshot é a cópia do gênero embutida no filme.
type GenreSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot retorna uma cópia por valor do gênero.
func (g Genre) Snapshot() GenreSnapshot {
	return GenreSnapshot{ID: g.ID, Name: g.Name}
}

func (s GenreSnapshot) Value() (driver.Value, error) {
	return marshalJSON(s)
}

func (s *GenreSnapshot) Scan(src interface{}) error {
	return scanJSON(src, s)
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Customer representa um cliente da locadora.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsGold bool   `json:"isGold"` // Cliente fidelidade
}

// CustomerInput é o payload de criação e atualização de clientes.
type CustomerInput struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	Phone  string `json:"phone" validate:"required,min=11,max=15"`
	IsGold bool   `json:"isGold"`
}

// CustomerSnapshot é a cópia do cliente embutida em uma locação no momento da retirada.
// Nunca é sincronizada com edições posteriores do cliente.
type CustomerSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Snapshot retorna uma cópia por valor do estado atual do cliente.
func (c Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

// Value serializa o snapshot como documento JSONB.
func (s CustomerSnapshot) Value() (driver.Value, error) {
	return marshalJSON(s)
}

// Scan lê o snapshot a partir de uma coluna JSONB.
func (s *CustomerSnapshot) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// scanJSON é compartilhado pelos snapshots armazenados como JSONB.
func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("tipo incompatível para snapshot JSONB: %T", src)
	}
}

package domain

import (
	"time"
)

// Sweet representa o produto do estoque da loja de doces (a Entidade).
// O ID e os timestamps são atribuídos pelo repositório.
type Sweet struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Version   int       `json:"-" db:"version"` // Para Controle de Concorrência Otimista (OCC)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SweetDraft é o payload de criação de um doce (POST /api/sweets).
type SweetDraft struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ToSweet converte o rascunho em uma entidade ainda não persistida (sem ID).
func (d SweetDraft) ToSweet() Sweet {
	return Sweet{
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Quantity: d.Quantity,
	}
}

// SweetUpdate é uma atualização parcial: campos nil não alteram o valor armazenado.
type SweetUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
}

// SweetFilter define os critérios opcionais da busca (GET /api/sweets/search).
type SweetFilter struct {
	Name     *string
	Category *string
	MinPrice *float64
	MaxPrice *float64
}

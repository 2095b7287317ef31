package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"409"`
	Category string `json:"category" example:"INSUFFICIENT_STOCK"`
	Message  string `json:"message" example:"Estoque insuficiente: podemos fornecer apenas 100 unidade(s)."`
}

// APIResponse é o envelope das respostas de sucesso.
// @Description Envelope padronizado para respostas de sucesso.
type APIResponse struct {
	Message string      `json:"message" example:"Doce comprado com sucesso."`
	Data    interface{} `json:"data,omitempty"`
}

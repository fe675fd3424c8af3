package model

// Usuario is an operator account for the admin endpoints.
type Usuario struct {
	Username     string `json:"username" validate:"required"`
	Nombre       string `json:"nombre"`
	PasswordHash string `json:"password_hash" validate:"required"`
	Rol          string `json:"rol" validate:"required"` // administrador
	Activo       bool   `json:"activo"`
}

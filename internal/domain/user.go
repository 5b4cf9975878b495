package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// User é um usuário do painel provisionado via configuração.
// Não há cadastro dinâmico: o painel é somente leitura.
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Active       bool   `json:"active"`
}

type Claims struct {
	UserEmail string
	UserName  string
	jwt.RegisteredClaims
}

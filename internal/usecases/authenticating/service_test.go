package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey: "chave-de-teste",
		Users: []config.User{
			{Email: "analista@empresa.com", PasswordHash: string(hash)},
		},
	}

	return NewService(cfg)
}

func TestLoginUser(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Credenciais válidas",
			email:    "analista@empresa.com",
			password: "senha-correta",
		},
		{
			name:     "Email com maiúsculas e espaços é normalizado",
			email:    "  Analista@Empresa.com ",
			password: "senha-correta",
		},
		{
			name:     "Senha incorreta",
			email:    "analista@empresa.com",
			password: "senha-errada",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Usuário inexistente responde como credencial inválida",
			email:    "intruso@empresa.com",
			password: "qualquer",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:    "Dados obrigatórios ausentes",
			email:   "",
			wantErr: ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.LoginUser("analista@empresa.com", "senha-correta")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analista@empresa.com", claims.UserEmail)
	assert.Equal(t, "analista", claims.UserName)
}

func TestValidateToken_TokenInvalido(t *testing.T) {
	service := newTestService(t)

	_, err := service.ValidateToken("nao-e-um-jwt")
	assert.Error(t, err)
}

func TestValidateToken_ChaveDiferente(t *testing.T) {
	service := newTestService(t)

	token, err := service.LoginUser("analista@empresa.com", "senha-correta")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	require.NoError(t, err)

	other := NewService(&config.Config{
		SecretKey: "outra-chave",
		Users:     []config.User{{Email: "analista@empresa.com", PasswordHash: string(hash)}},
	})

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

type memUsers struct {
	mu    sync.Mutex
	byKey map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[u.Email]; ok {
		return domain.ErrDuplicate
	}
	m.byKey[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byKey {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byKey[email], nil
}

const secret = "s3cr3t"

func newUC() (*AuthUseCase, *memUsers) {
	repo := &memUsers{byKey: map[string]*entity.User{}}
	return NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, NewUser{NegocioID: "n1", Email: " Admin@Tienda.com ", Password: "clave-segura", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@tienda.com", u.Email)

	_, err = uc.RegisterUser(ctx, NewUser{NegocioID: "n1", Email: "admin@tienda.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)
	assert.True(t, resp.OK)

	id, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: u.ID, NegocioID: "n1", Role: entity.RoleAdmin}, id)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, NewUser{NegocioID: "n1", Email: "v@t.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "v@t.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@t.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.byKey["v@t.com"].Active = false
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "v@t.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, NewUser{NegocioID: "n1", Email: "a@b.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, NewUser{NegocioID: "n1", Email: "a@b.com", Password: "clave-segura", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

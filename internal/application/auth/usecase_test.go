package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// fakeUserRepo en memoria indexado por email.
type fakeUserRepo struct {
	users map[string]*entity.User

	// findByEmailErr hace fallar la búsqueda por email.
	findByEmailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 15, Issuer: "almacen-api"}
}

func TestRegisterUser_YLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@almacen.test",
		Password: "clave-segura",
		FullName: "Ana Torres",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, out.Role, "rol staff por defecto")
	assert.True(t, out.IsActive)

	login, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, out.ID, login.User.ID)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.test", Password: "clave"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_FalloAlBuscarEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findByEmailErr = errors.New("select by email: conexión perdida")
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.test", Password: "clave"})
	require.ErrorIs(t, err, repo.findByEmailErr, "el error del repositorio se propaga")
	assert.Empty(t, repo.users, "no se registra nada si la búsqueda falla")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.test", Password: "clave"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@almacen.test", Password: "clave"})
	require.NoError(t, err)

	repo.users["ana@almacen.test"].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

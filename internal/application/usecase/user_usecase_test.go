package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/application/usecase"
	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.SystemUser
}

func newFakeUserRepo(seed ...*entity.SystemUser) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.SystemUser{}}
	for _, u := range seed {
		cp := *u
		r.users[u.Username] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.SystemUser) error {
	if _, ok := r.users[u.Username]; ok {
		return domain.ErrUsernameTaken
	}
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *entity.SystemUser) error {
	if _, ok := r.users[u.Username]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.SystemUser, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, posID *int, limit, offset int) ([]*entity.SystemUser, error) {
	var out []*entity.SystemUser
	for _, u := range r.users {
		if posID != nil && (u.PosID == nil || *u.PosID != *posID) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, username string) error {
	delete(r.users, username)
	return nil
}

func intPtr(v int) *int { return &v }

// Un alta sin contraseña se rechaza antes de tocar la persistencia.
func TestSaveUser_AltaSinPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username: "nuevo",
		Name:     "Nuevo Barbero",
		Role:     entity.RoleBarbero,
	})

	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
	assert.Empty(t, repo.users)
}

// El alta normaliza el rol legacy y deja HasPassword en la respuesta.
func TestSaveUser_AltaNormalizaRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	resp, err := uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username: "barbero1",
		Password: "123",
		Name:     "Carlos",
		Role:     "empleado",
		PosID:    intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleBarbero, resp.Role)
	assert.True(t, resp.HasPassword)
	assert.Equal(t, entity.RoleBarbero, repo.users["barbero1"].Role)
}

// En una edición, contraseña vacía conserva la almacenada.
func TestSaveUser_EdicionConservaPassword(t *testing.T) {
	repo := newFakeUserRepo(&entity.SystemUser{
		Username: "barbero1",
		Password: "secreta",
		Name:     "Carlos",
		Role:     entity.RoleBarbero,
	})
	uc := usecase.NewUserUseCase(repo)

	resp, err := uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username: "barbero1",
		Name:     "Carlos Gómez",
		Role:     entity.RoleBarbero,
	})

	require.NoError(t, err)
	assert.True(t, resp.HasPassword)
	assert.Equal(t, "secreta", repo.users["barbero1"].Password)
	assert.Equal(t, "Carlos Gómez", repo.users["barbero1"].Name)
}

// Permissions nil en la edición significa "sin cambios"; un mapa vacío sí
// reemplaza.
func TestSaveUser_EdicionPermisosNil(t *testing.T) {
	repo := newFakeUserRepo(&entity.SystemUser{
		Username:    "barbero1",
		Password:    "123",
		Name:        "Carlos",
		Role:        entity.RoleBarbero,
		Permissions: map[string]bool{"ver_reportes": true},
	})
	uc := usecase.NewUserUseCase(repo)

	resp, err := uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username: "barbero1",
		Name:     "Carlos",
		Role:     entity.RoleBarbero,
	})
	require.NoError(t, err)
	assert.True(t, resp.Permissions["ver_reportes"], "nil conserva los permisos previos")

	resp, err = uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username:    "barbero1",
		Name:        "Carlos",
		Role:        entity.RoleBarbero,
		Permissions: map[string]bool{},
	})
	require.NoError(t, err)
	assert.False(t, resp.Permissions["ver_reportes"], "un mapa vacío reemplaza")
}

// La edición no pisa la fecha de creación original.
func TestSaveUser_EdicionConservaCreatedAt(t *testing.T) {
	seed := &entity.SystemUser{
		Username: "barbero1",
		Password: "123",
		Name:     "Carlos",
		Role:     entity.RoleBarbero,
	}
	seed.CreatedAt = seed.CreatedAt.AddDate(-1, 0, 0)
	repo := newFakeUserRepo(seed)
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.SaveUser(context.Background(), dto.SaveUserRequest{
		Username: "barbero1",
		Name:     "Carlos",
		Role:     entity.RoleBarbero,
	})

	require.NoError(t, err)
	assert.Equal(t, seed.CreatedAt, repo.users["barbero1"].CreatedAt)
}

func TestSaveUser_CamposObligatorios(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	for _, in := range []dto.SaveUserRequest{
		{Name: "Carlos", Role: entity.RoleBarbero},
		{Username: "barbero1", Role: entity.RoleBarbero},
		{Username: "barbero1", Name: "Carlos"},
		{Username: "   ", Name: "Carlos", Role: entity.RoleBarbero},
	} {
		_, err := uc.SaveUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// TogglePermission invierte solo la capacidad pedida y deja las demás.
func TestTogglePermission_Merge(t *testing.T) {
	repo := newFakeUserRepo(&entity.SystemUser{
		Username:    "barbero1",
		Password:    "123",
		Name:        "Carlos",
		Role:        entity.RoleBarbero,
		Permissions: map[string]bool{"ver_reportes": true, "abrir_caja": false},
	})
	uc := usecase.NewUserUseCase(repo)

	resp, err := uc.TogglePermission(context.Background(), "barbero1", "abrir_caja")

	require.NoError(t, err)
	assert.True(t, resp.Permissions["abrir_caja"])
	assert.True(t, resp.Permissions["ver_reportes"], "las demás capacidades quedan intactas")
}

// Una clave ausente cuenta como no concedida: el primer toggle la concede,
// incluso cuando el usuario nunca tuvo mapa de permisos.
func TestTogglePermission_MapaAusente(t *testing.T) {
	repo := newFakeUserRepo(&entity.SystemUser{
		Username: "barbero1",
		Password: "123",
		Name:     "Carlos",
		Role:     entity.RoleBarbero,
	})
	uc := usecase.NewUserUseCase(repo)

	resp, err := uc.TogglePermission(context.Background(), "barbero1", "ver_reportes")

	require.NoError(t, err)
	assert.True(t, resp.Permissions["ver_reportes"])
}

func TestTogglePermission_UsuarioInexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.TogglePermission(context.Background(), "fantasma", "ver_reportes")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTogglePermission_CapacidadVacia(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.TogglePermission(context.Background(), "barbero1", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByUsername_NoExiste(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	resp, err := uc.GetByUsername(context.Background(), "fantasma")

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestList_FiltraPorSucursal(t *testing.T) {
	repo := newFakeUserRepo(
		&entity.SystemUser{Username: "barbero1", Password: "123", Name: "Carlos", Role: entity.RoleBarbero, PosID: intPtr(5)},
		&entity.SystemUser{Username: "barbero2", Password: "123", Name: "Luis", Role: entity.RoleBarbero, PosID: intPtr(7)},
	)
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.List(context.Background(), intPtr(5), dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "barbero1", out[0].Username)
}

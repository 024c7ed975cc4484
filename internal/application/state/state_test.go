package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/application/state"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
)

func newStorage(t *testing.T, dir string) *localstore.Store {
	t.Helper()
	s, err := localstore.New(dir)
	require.NoError(t, err)
	return s
}

func testUser() *dto.UserResponse {
	return &dto.UserResponse{ID: "u-1", Email: "owner@acme.test", Name: "Dueño Acme", Role: "owner"}
}

func TestAppState_UserYStoreSobrevivenReinicio(t *testing.T) {
	dir := t.TempDir()

	st := state.New(newStorage(t, dir), nil)
	st.SetUser(testUser())
	st.SetStore(&dto.StoreResponse{ID: "s-1", Name: "Acme Centro"})

	// "Reinicio": un AppState nuevo sobre el mismo directorio.
	st2 := state.New(newStorage(t, dir), nil)
	require.NotNil(t, st2.User())
	assert.Equal(t, "owner@acme.test", st2.User().Email)
	require.NotNil(t, st2.Store())
	assert.Equal(t, "Acme Centro", st2.Store().Name)
	assert.True(t, st2.Get().Authenticated())
}

func TestAppState_LoadingYErrorNuncaSePersisten(t *testing.T) {
	dir := t.TempDir()

	st := state.New(newStorage(t, dir), nil)
	st.SetUser(testUser())
	st.SetLoading(true)
	st.SetError("algo salió mal")

	st2 := state.New(newStorage(t, dir), nil)
	assert.False(t, st2.Loading(), "Loading es efímero")
	assert.Empty(t, st2.Error(), "Error es efímero")
	assert.NotNil(t, st2.User(), "User sí se persiste")
}

func TestAppState_ResetLimpiaTodoIncluidoLoPersistido(t *testing.T) {
	dir := t.TempDir()

	st := state.New(newStorage(t, dir), nil)
	st.SetUser(testUser())
	st.SetStore(&dto.StoreResponse{ID: "s-1"})
	st.Reset()

	assert.Nil(t, st.User())
	assert.Nil(t, st.Store())
	assert.False(t, st.Get().Authenticated())

	st2 := state.New(newStorage(t, dir), nil)
	assert.Nil(t, st2.User(), "el reset también borra la copia en disco")
}

func TestAppState_EstadoPersistidoCorruptoSeDescarta(t *testing.T) {
	dir := t.TempDir()
	storage := newStorage(t, dir)
	require.NoError(t, storage.Set(localstore.KeyAppState, "{esto no es json"))

	st := state.New(storage, nil)
	assert.Nil(t, st.User(), "estado ilegible arranca limpio")
	assert.False(t, st.Get().Authenticated())
}

func TestAppState_SubscribeNotificaYSeDesuscribe(t *testing.T) {
	st := state.New(newStorage(t, t.TempDir()), nil)

	var got []state.Snapshot
	unsub := st.Subscribe(func(s state.Snapshot) { got = append(got, s) })

	st.SetUser(testUser())
	require.Len(t, got, 1)
	assert.Equal(t, "u-1", got[0].User.ID)

	unsub()
	st.SetLoading(true)
	assert.Len(t, got, 1, "tras desuscribirse no llegan más notificaciones")
}

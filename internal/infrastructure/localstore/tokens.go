package localstore

// TokenStore lee y escribe el par de tokens sobre el Store. Las dos claves
// se persisten por separado, igual que en el front histórico: pueden quedar
// desincronizadas si una escritura falla y la otra no.
type TokenStore struct {
	store *Store
}

// NewTokenStore construye el TokenStore.
func NewTokenStore(store *Store) *TokenStore {
	return &TokenStore{store: store}
}

// AccessToken devuelve el access token guardado ("" si no hay).
func (t *TokenStore) AccessToken() string {
	v, _ := t.store.Get(KeyAuthToken)
	return v
}

// RefreshToken devuelve el refresh token guardado ("" si no hay).
func (t *TokenStore) RefreshToken() string {
	v, _ := t.store.Get(KeyRefreshToken)
	return v
}

// SetTokens persiste ambos tokens. Devuelve el primer error encontrado pero
// intenta escribir los dos.
func (t *TokenStore) SetTokens(access, refresh string) error {
	err := t.store.Set(KeyAuthToken, access)
	if err2 := t.store.Set(KeyRefreshToken, refresh); err == nil {
		err = err2
	}
	return err
}

// Clear borra ambos tokens.
func (t *TokenStore) Clear() {
	t.store.Delete(KeyAuthToken)
	t.store.Delete(KeyRefreshToken)
}

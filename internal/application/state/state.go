package state

import (
	"encoding/json"
	"sync"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/infrastructure/localstore"
	"github.com/jhoicas/mypos-admin/pkg/logger"
)

// Snapshot es la vista inmutable del estado de aplicación.
// User y Store sobreviven reinicios; Loading y Error nunca se persisten.
type Snapshot struct {
	Loading bool
	Error   string
	User    *dto.UserResponse
	Store   *dto.StoreResponse
}

// Authenticated indica si hay un usuario actual en el estado.
func (s Snapshot) Authenticated() bool { return s.User != nil }

// persisted es la única forma que toca disco. Un solo serializador, una
// sola clave (appState), escrito desde un solo lugar (persist).
type persisted struct {
	User  *dto.UserResponse  `json:"user,omitempty"`
	Store *dto.StoreResponse `json:"store,omitempty"`
}

// AppState es la fuente única de verdad del cliente: usuario y tienda
// actuales más flags efímeros de loading/error. A diferencia del front
// histórico aquí sí hay mutex: el cliente Go no corre en un único hilo.
type AppState struct {
	mu      sync.RWMutex
	snap    Snapshot
	storage *localstore.Store
	log     *logger.Logger
	subs    map[int]func(Snapshot)
	nextSub int
}

// New construye el estado restaurando user/store desde la clave appState.
// Un estado persistido corrupto se descarta en silencio (se loguea).
func New(storage *localstore.Store, log *logger.Logger) *AppState {
	if log == nil {
		log = logger.Nop()
	}
	st := &AppState{storage: storage, log: log, subs: map[int]func(Snapshot){}}
	if raw, ok := storage.Get(localstore.KeyAppState); ok {
		var p persisted
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			log.Warn().Err(err).Msg("appState persistido ilegible, se descarta")
		} else {
			st.snap.User = p.User
			st.snap.Store = p.Store
		}
	}
	return st
}

// Get devuelve la vista actual del estado.
func (s *AppState) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// User devuelve el usuario actual (nil si no hay sesión).
func (s *AppState) User() *dto.UserResponse { return s.Get().User }

// Store devuelve la tienda actual (nil si no hay).
func (s *AppState) Store() *dto.StoreResponse { return s.Get().Store }

// Loading devuelve el flag efímero de carga.
func (s *AppState) Loading() bool { return s.Get().Loading }

// Error devuelve el último error registrado ("" si no hay).
func (s *AppState) Error() string { return s.Get().Error }

// SetUser fija el usuario actual (y lo persiste).
func (s *AppState) SetUser(u *dto.UserResponse) {
	s.Update(func(snap *Snapshot) { snap.User = u })
}

// SetStore fija la tienda actual (y la persiste).
func (s *AppState) SetStore(st *dto.StoreResponse) {
	s.Update(func(snap *Snapshot) { snap.Store = st })
}

// SetLoading fija el flag de carga (efímero).
func (s *AppState) SetLoading(v bool) {
	s.Update(func(snap *Snapshot) { snap.Loading = v })
}

// SetError registra un error de aplicación (efímero).
func (s *AppState) SetError(msg string) {
	s.Update(func(snap *Snapshot) { snap.Error = msg })
}

// Update aplica una mutación arbitraria bajo lock, persiste y notifica.
func (s *AppState) Update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	s.persist(snap)
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(snap)
	}
}

// Reset limpia todo el estado, incluida la copia persistida.
func (s *AppState) Reset() {
	s.Update(func(snap *Snapshot) { *snap = Snapshot{} })
}

// Subscribe registra un callback de reacción a cambios de estado.
// Devuelve la función para desuscribirse.
func (s *AppState) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// persist es el único punto de escritura del estado. Solo user/store tocan
// disco; una falla de persistencia se loguea y no interrumpe la mutación.
func (s *AppState) persist(snap Snapshot) {
	data, err := json.Marshal(persisted{User: snap.User, Store: snap.Store})
	if err != nil {
		s.log.Warn().Err(err).Msg("serializar appState")
		return
	}
	if err := s.storage.Set(localstore.KeyAppState, string(data)); err != nil {
		s.log.Warn().Err(err).Msg("persistir appState")
	}
}

package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Claves persistidas por el cliente. Equivalen a las claves de local storage
// del front histórico; cada una vive en su propio archivo y se escribe de
// forma independiente (sin garantía transaccional entre claves).
const (
	KeyAuthToken       = "authToken"
	KeyRefreshToken    = "refreshToken"
	KeyAuthUser        = "authUser"
	KeyAppState        = "appState"
	KeyRememberedEmail = "rememberedEmail"
	KeyDefaultStore    = "defaultStore"
	KeySelectedStore   = "selectedStore"
)

var validKey = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Store guarda pares clave/valor como archivos bajo un directorio de estado
// del usuario. Seguro para uso concurrente dentro del proceso.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// New abre (creando si hace falta) el directorio de estado. Con dir vacío
// usa $XDG_CONFIG_HOME/mypos-admin (o el equivalente del SO).
func New(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("localstore: sin directorio de configuración: %w", err)
		}
		dir = filepath.Join(base, "mypos-admin")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("localstore: crear %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Get devuelve el valor de la clave y si existe.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.path(key)
	if err != nil {
		return "", false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Set escribe el valor de la clave. Escritura atómica vía archivo temporal
// y rename, para no dejar valores a medias si el proceso muere.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("localstore: escribir %s: %w", key, err)
	}
	return os.Rename(tmp, p)
}

// Delete elimina la clave; no es error que no exista.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, err := s.path(key); err == nil {
		_ = os.Remove(p)
	}
}

// Dir devuelve el directorio de estado en uso.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", errors.New("localstore: clave inválida: " + key)
	}
	return filepath.Join(s.dir, key), nil
}

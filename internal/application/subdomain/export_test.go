package subdomain

import "time"

// SetClock fija el reloj interno del servicio para controlar la expiración
// de la caché en los tests.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Valores por defecto cuando no hay config.json ni variables de entorno.
const (
	DefaultAPIURL     = "http://localhost:8087"
	DefaultMainDomain = "mypos.local"
)

// Config agrupa la configuración de la aplicación. Se lee vía Viper desde
// config.json (generado en el despliegue) con override por variables de
// entorno; si el archivo no existe o no se puede leer se aplican los
// valores por defecto.
type Config struct {
	API        APIConfig
	State      StateConfig
	Mock       MockConfig
	Production bool
}

// APIConfig ubicación del backend REST y dominio principal de la plataforma.
type APIConfig struct {
	URL        string // base del backend, ej. http://localhost:8087
	MainDomain string // dominio del operador de plataforma, ej. mypos.local
	Timeout    time.Duration
}

// StateConfig persistencia local del cliente (tokens y estado de aplicación).
type StateConfig struct {
	Dir string // vacío = $XDG_CONFIG_HOME/mypos-admin
}

// MockConfig configuración del backend de desarrollo (cmd/mockapi).
type MockConfig struct {
	Host            string
	Port            int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	LoginRatePerMin int // intentos de login por minuto y por IP
	LoginBurst      int
}

// Addr devuelve la dirección de escucha del mock (host:port).
func (c MockConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee config.json desde los paths indicados (o el directorio actual) y
// aplica overrides de entorno: API_URL, MAIN_DOMAIN, PRODUCTION, etc.
// Nunca falla por archivo ausente: cae a los valores por defecto.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		API: APIConfig{
			URL:        getString(v, "API_URL", getString(v, "apiUrl", DefaultAPIURL)),
			MainDomain: getString(v, "MAIN_DOMAIN", getString(v, "mainDomain", DefaultMainDomain)),
			Timeout:    getDuration(v, "API_TIMEOUT", 15*time.Second),
		},
		State: StateConfig{
			Dir: getString(v, "STATE_DIR", ""),
		},
		Mock: MockConfig{
			Host:            getString(v, "MOCK_HOST", "0.0.0.0"),
			Port:            getInt(v, "MOCK_PORT", 8087),
			JWTSecret:       getString(v, "MOCK_JWT_SECRET", "dev-only-secret"),
			JWTIssuer:       getString(v, "MOCK_JWT_ISSUER", "mypos-mockapi"),
			AccessTTL:       getDuration(v, "MOCK_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:      getDuration(v, "MOCK_REFRESH_TTL", 7*24*time.Hour),
			LoginRatePerMin: getInt(v, "MOCK_LOGIN_RATE", 10),
			LoginBurst:      getInt(v, "MOCK_LOGIN_BURST", 5),
		},
		Production: getBool(v, "PRODUCTION", getBool(v, "production", false)),
	}

	cfg.API.URL = strings.TrimRight(cfg.API.URL, "/")

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}

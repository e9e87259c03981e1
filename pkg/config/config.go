package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT (validación de tokens emitidos por el
// servicio de autenticación del back-office).
type JWTConfig struct {
	Secret string
	Issuer string
}

// BackendConfig ubicación del backend de catálogo/pedidos/transacciones.
type BackendConfig struct {
	BaseURL        string // ej. https://api.gestion-uno.example/v1
	TimeoutSeconds int
	APIToken       string // token de servicio para las llamadas salientes
}

// Timeout del cliente HTTP saliente.
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig caché opcional de listados de catálogo. Con Addr vacío la caché
// se desactiva (implementación noop).
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// TTL de las páginas de catálogo cacheadas.
func (c RedisConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// SessionConfig sesiones de caja en memoria.
type SessionConfig struct {
	TTLMinutes     int
	CatalogPerPage int
}

// TTL vida de una sesión de caja sin actividad.
func (c SessionConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 0 // el registro aplica su propio valor por defecto
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// HTTP_PORT, JWT_SECRET, BACKEND_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "gestion-uno-pos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "gestion-uno"),
		},
		Backend: BackendConfig{
			BaseURL:        getString(v, "BACKEND_BASE_URL", "http://localhost:9000/api"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 15),
			APIToken:       getString(v, "BACKEND_API_TOKEN", ""),
		},
		Redis: RedisConfig{
			Addr:       getString(v, "REDIS_ADDR", ""),
			Password:   getString(v, "REDIS_PASSWORD", ""),
			DB:         getInt(v, "REDIS_DB", 0),
			TTLSeconds: getInt(v, "REDIS_CATALOG_TTL_SECONDS", 30),
		},
		Session: SessionConfig{
			TTLMinutes:     getInt(v, "SESSION_TTL_MINUTES", 30),
			CatalogPerPage: getInt(v, "CATALOG_PER_PAGE", 10),
		},
	}

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
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

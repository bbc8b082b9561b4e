package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config regroupe les variables d'environnement du serveur front
type Config struct {
	Port                 string        `env:"PORT" envDefault:"8080"`
	APIBaseURL           string        `env:"API_BASE_URL" envDefault:"http://localhost:8086"`
	SessionSecret        string        `env:"SESSION_SECRET,required"`
	SessionEncryptionKey string        `env:"SESSION_ENCRYPTION_KEY"`
	SessionMaxAge        time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	CookieSecure         bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RedisHost            string        `env:"REDIS_HOST"`
	RedisPassword        string        `env:"REDIS_PASSWORD"`
	RedisDB              int           `env:"REDIS_DB" envDefault:"0"`
	APITimeout           time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	CORSOrigins          []string      `env:"CORS_ORIGINS" envSeparator:","`
	GinMode              string        `env:"GIN_MODE"`
}

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Parse lit l'environnement (après Load) et valide les valeurs
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("configuration invalide: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFrom sert aux tests : pas de lecture de l'environnement du process
func ParseFrom(vars map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return Config{}, fmt.Errorf("configuration invalide: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch len(c.SessionEncryptionKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("SESSION_ENCRYPTION_KEY doit faire 16, 24 ou 32 octets (reçu %d)", len(c.SessionEncryptionKey))
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE doit être positif")
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("API_TIMEOUT ne peut pas être négatif")
	}
	return nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// Addr renvoie l'adresse d'écoute pour gin
func (c Config) Addr() string {
	return ":" + c.Port
}

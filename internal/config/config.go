package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Database struct {
	Driver   string `env:"DB_DRIVER" env-default:"sqlite"` // sqlite | postgres
	Path     string `env:"DB_PATH" env-default:"kasir.db"`
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" env-default:"kasir"`
	LogSQL   bool   `env:"DB_LOG_SQL" env-default:"false"`
}

type Config struct {
	AppName     string `env:"APP_NAME" env-default:"Kasir POS v1.0"`
	Port        string `env:"PORT" env-default:"3000"`
	OutputDir   string `env:"OUTPUT_DIR" env-default:"output"`
	Timezone    string `env:"TIMEZONE" env-default:"Asia/Jakarta"`
	OpenReceipt bool   `env:"OPEN_RECEIPT" env-default:"true"`
	Database    Database
}

// Load membaca .env (opsional) lalu environment ke dalam Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (d *Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}

// Location returns the configured timezone, falling back to WIB (UTC+7)
// when tzdata is not available on the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

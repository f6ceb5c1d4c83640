package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Drivers de persistência suportados.
const (
	DriverPostgres = "postgres"
	DriverMemoria  = "memoria"
)

type Config struct {
	Porta           string
	DSN             string
	StorageDriver   string
	EmailWebhookURL string
	SMSWebhookURL   string
	AllowedOrigins  []string
}

// Carregar lê o .env (quando existe) e monta a configuração. JWT_SECRET
// é obrigatório: sem ele nenhum token emitido sobrevive a um restart.
func Carregar() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("arquivo .env não encontrado, usando variáveis do ambiente")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET não definido")
	}

	cfg := &Config{
		Porta:           env("PORT", "8080"),
		DSN:             os.Getenv("DATABASE_DSN"),
		StorageDriver:   env("STORAGE_DRIVER", DriverPostgres),
		EmailWebhookURL: os.Getenv("EMAIL_WEBHOOK_URL"),
		SMSWebhookURL:   os.Getenv("SMS_WEBHOOK_URL"),
		AllowedOrigins:  strings.Split(env("ALLOWED_ORIGINS", "*"), ","),
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN não definido para o driver postgres")
		}
	case DriverMemoria:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconhecido: %s", cfg.StorageDriver)
	}

	return cfg, nil
}

func env(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

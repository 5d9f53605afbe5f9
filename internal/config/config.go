package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	// Payment gateway (checksum-based redirect checkout).
	Payment struct {
		MerchantID     string `yaml:"merchant_id"`
		MerchantSecret string `yaml:"merchant_secret"`
		Currency       string `yaml:"currency"`
		CheckoutURL    string `yaml:"checkout_url"`
		ReturnURL      string `yaml:"return_url"`
		CancelURL      string `yaml:"cancel_url"`
		NotifyURL      string `yaml:"notify_url"`
	} `yaml:"payment"`

	Push struct {
		Enabled   bool   `yaml:"enabled"`
		ServerKey string `yaml:"server_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"push"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or environment variables when
// DATABASE_URL is set (test and container deployments).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Payment.MerchantID = os.Getenv("PAYMENT_MERCHANT_ID")
	cfg.Payment.MerchantSecret = os.Getenv("PAYMENT_MERCHANT_SECRET")
	cfg.Payment.Currency = getEnvDefault("PAYMENT_CURRENCY", "LKR")
	cfg.Payment.CheckoutURL = os.Getenv("PAYMENT_CHECKOUT_URL")
	cfg.Payment.ReturnURL = os.Getenv("PAYMENT_RETURN_URL")
	cfg.Payment.CancelURL = os.Getenv("PAYMENT_CANCEL_URL")
	cfg.Payment.NotifyURL = os.Getenv("PAYMENT_NOTIFY_URL")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = getEnvDefault("SMTP_FROM", "noreply@daycare.local")
	cfg.Email.TemplatesDir = "templates"

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	AppConfig = &cfg
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

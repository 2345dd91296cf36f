package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/evasion-voyages/voyages-manager/internal/api/http"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/auth"
	"github.com/evasion-voyages/voyages-manager/internal/mail"
	"github.com/evasion-voyages/voyages-manager/internal/store"
	"github.com/evasion-voyages/voyages-manager/internal/uploads"
	"github.com/evasion-voyages/voyages-manager/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB      store.Config   `mapstructure:"mysql"`
	Logger  log.Config     `mapstructure:"logger"`
	HTTP    httpapi.Config `mapstructure:"http"`
	Auth    auth.Config    `mapstructure:"auth"`
	Uploads uploads.Config `mapstructure:"uploads"`
	Mailer  mail.Config    `mapstructure:"mailer"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g. MYSQL__DSN for mysql.dsn.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/voyages-manager")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Assemble the DSN from the individual DB_* env vars when no full DSN
	// is configured.
	if config.DB.DSN == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "3306"
		}
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		if user != "" && name != "" {
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
				user, password, host, port, name)
		}
	}

	if config.Auth.AdminToken == "" {
		config.Auth.AdminToken = os.Getenv("ADMIN_TOKEN")
	}

	if config.HTTP.Port == "" {
		config.HTTP.Port = "8080"
	}
	if config.Uploads.Dir == "" {
		config.Uploads.Dir = "./uploads"
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to nested config keys.
func bindEnvVars() {
	bindings := map[string]string{
		"mysql.dsn":               "MYSQL_DSN",
		"mysql.automigrate":       "MYSQL_AUTOMIGRATE",
		"http.port":               "PORT",
		"http.address":            "HTTP_ADDRESS",
		"http.allowed_origins":    "HTTP_ALLOWED_ORIGINS",
		"auth.admin_token":        "ADMIN_TOKEN",
		"uploads.dir":             "UPLOADS_DIR",
		"uploads.base_url":        "UPLOADS_BASE_URL",
		"mailer.sendgrid_api_key": "SENDGRID_API_KEY",
		"mailer.from_email":       "MAILER_FROM_EMAIL",
		"mailer.from_email_name":  "MAILER_FROM_NAME",
		"logger.level":            "LOG_LEVEL",
	}
	for key, env := range bindings {
		_ = viper.BindEnv(key, env)
	}
}

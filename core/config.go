package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Database     DBConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
	}

	DBConfig struct {
		Engine        string // sqlite3 | postgres
		Path          string // sqlite3 only
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		DeletePolicy  DeletePolicy
	}
)

// Address returns the "host:port" of a networked database.
func (c DBConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("database.engine", "sqlite3")
	v.SetDefault("database.path", filepath.Join("var", "shule.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "shule")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", false)
	v.SetDefault("database.deletePolicy", string(DeleteRestrict))
}

// NewConfig loads the application config.
// Values are resolved from (highest priority first): environment variables prefixed with the current ENV,
// `config/.env.<env>`, `config/config.yaml` then defaults.
// CONFIG_DIR overrides the "config" directory.
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	confDir := os.Getenv("CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(confDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config.ReadInConfig(%s): %v", confDir, err)
		}
	}

	policy, err := ParseDeletePolicy(v.GetString("database.deletePolicy"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debugAddress"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DBConfig{
			Engine:        v.GetString("database.engine"),
			Path:          v.GetString("database.path"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			DeletePolicy:  policy,
		},
	}
}

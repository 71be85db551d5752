package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Env      string // DEV (default), TEST, QA, PROD
	Build    string
	Debug    bool
	TestMode bool

	RollbarToken string

	Server struct {
		Host            string
		Addr            string
		ShutdownTimeout time.Duration
	}

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Session struct {
		Dir       string
		Namespace string
	}

	Auth struct {
		// FailureRedirectDelay is how long the callback failure page waits
		// before sending the user back to the login page.
		FailureRedirectDelay time.Duration
	}
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Campus")
	conf.SetDefault("build", "dev")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":3000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("apiBaseUrl", "http://127.0.0.1:8000/api")
	conf.SetDefault("apiTimeout", 10*time.Second)
	conf.SetDefault("sessionDir", defaultSessionDir())
	conf.SetDefault("sessionNamespace", "auth-storage")
	conf.SetDefault("authFailureRedirectDelay", 3*time.Second)
	conf.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     env == "TEST",
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("serverHost")
	c.Server.Addr = conf.GetString("serverAddr")
	c.Server.ShutdownTimeout = conf.GetDuration("serverShutdownTimeout")
	c.API.BaseURL = conf.GetString("apiBaseUrl")
	c.API.Timeout = conf.GetDuration("apiTimeout")
	c.Session.Dir = conf.GetString("sessionDir")
	c.Session.Namespace = conf.GetString("sessionNamespace")
	c.Auth.FailureRedirectDelay = conf.GetDuration("authFailureRedirectDelay")
	return c
}

func defaultSessionDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "campus")
}

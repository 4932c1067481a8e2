package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName          string `json:"appname"`
	AppEnv           string `json:"appenv"`
	AppPort          uint16 `json:"appport"`
	GinMode          string `json:"ginmode"`
	RemoteAPIBaseURL string `json:"remote_api_base_url"`
	ProbeTimeoutSecs int    `json:"probe_timeout_secs"`
	APIToken         string `json:"apitoken"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is tolerated so the binary runs with plain environment variables.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		if appPort == 0 {
			appPort = 8080
		}

		probeTimeout, _ := strconv.Atoi(os.Getenv("PROBE_TIMEOUT_SECONDS"))
		if probeTimeout <= 0 {
			probeTimeout = 3
		}

		baseURL := os.Getenv("REMOTE_API_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:3001/api"
		}

		config = &Config{
			AppName:          os.Getenv("APPNAME"),
			AppEnv:           os.Getenv("APPENV"),
			AppPort:          uint16(appPort),
			GinMode:          os.Getenv("GINMODE"),
			RemoteAPIBaseURL: baseURL,
			ProbeTimeoutSecs: probeTimeout,
			APIToken:         os.Getenv("APITOKEN"),
		}
	})
	return config
}

// ResetForTesting clears the singleton so tests can reload with different
// environment variables. Not for use outside tests.
func ResetForTesting() {
	config = nil
	once = sync.Once{}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// JWTSecretEnvVar overrides the signing secret from the config file. The
// secret is required: Validate fails when neither source provides one, so a
// misconfigured server refuses to start instead of signing with a default.
const JWTSecretEnvVar = "QUOTAFLOW_JWT_SECRET"

type ConfigParam struct {
	ServerPort           string `toml:"server_port"`
	HandleCORS           bool   `toml:"handle_cors"`
	CORSAllowedOrigin    string `toml:"cors_allowed_origin"`
	MongoURI             string `toml:"mongo_uri"`
	MongoDatabase        string `toml:"mongo_database"`
	JWTSigningSecret     string `toml:"jwt_signing_secret"`
	SessionTokenValidity string `toml:"session_token_validity"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		applyEnv(cfg)
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	fillDefaults(&cp)
	applyEnv(&cp)
	cfg = &cp
	return nil
}

func defaultConfig() *ConfigParam {
	return &ConfigParam{
		ServerPort:           "8196",
		HandleCORS:           true,
		CORSAllowedOrigin:    "http://localhost:3000",
		MongoURI:             "mongodb://localhost:27017",
		MongoDatabase:        "quotaflow",
		SessionTokenValidity: "1d",
	}
}

func fillDefaults(cp *ConfigParam) {
	def := defaultConfig()
	if cp.ServerPort == "" {
		cp.ServerPort = def.ServerPort
	}
	if cp.MongoURI == "" {
		cp.MongoURI = def.MongoURI
	}
	if cp.MongoDatabase == "" {
		cp.MongoDatabase = def.MongoDatabase
	}
	if cp.SessionTokenValidity == "" {
		cp.SessionTokenValidity = def.SessionTokenValidity
	}
}

func applyEnv(cp *ConfigParam) {
	if secret := os.Getenv(JWTSecretEnvVar); secret != "" {
		cp.JWTSigningSecret = secret
	}
}

// Validate checks the parts of the config the server cannot run without.
func (cp *ConfigParam) Validate() error {
	if cp.ServerPort == "" {
		return fmt.Errorf("server port not defined")
	}
	if cp.JWTSigningSecret == "" {
		return fmt.Errorf("jwt signing secret not defined: set jwt_signing_secret or %s", JWTSecretEnvVar)
	}
	if _, err := ParseTokenDuration(cp.SessionTokenValidity); err != nil {
		return fmt.Errorf("invalid session_token_validity: %v", err)
	}
	return nil
}

func ParseTokenDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", err)
	}

	var duration time.Duration
	switch unit {
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "h":
		duration = time.Duration(value) * time.Hour
	case "m":
		duration = time.Duration(value) * time.Minute
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}

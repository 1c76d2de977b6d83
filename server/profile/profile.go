// Package profile holds the runtime configuration of the mentio server.
package profile

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the resolved runtime configuration.
type Profile struct {
	// Mode is either "prod" or "dev".
	Mode string
	// Addr is the binding address.
	Addr string
	// Port is the binding port.
	Port int
	// Driver is the database driver: sqlite, mysql or postgres.
	Driver string
	// DSN is the database connection string.
	DSN string
	// JWTSecret signs and verifies caller tokens (HS256).
	JWTSecret string
	// JWTAudience, when non-empty, is required in the token's aud claim.
	JWTAudience string
	// ServiceAPIKey guards the service-to-service usage endpoint.
	ServiceAPIKey string
	// SubscriptionAPIURL is the base URL of the subscription backend.
	SubscriptionAPIURL string
	// OpenAIAPIKey authenticates against the generation backend.
	OpenAIAPIKey string
	// OpenAIBaseURL overrides the generation backend endpoint (optional).
	OpenAIBaseURL string
	// AIModel is the generation model name.
	AIModel string
	// MessageLimit is the monthly assistant-message quota for unpaid users.
	MessageLimit int
}

func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

// Validate rejects configurations the server cannot run with.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	switch p.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}
	if p.DSN == "" {
		return errors.New("database DSN is required")
	}
	if p.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if p.MessageLimit <= 0 {
		return errors.New("message limit must be a positive integer")
	}
	return nil
}

// FromEnv resolves a Profile from MENTIO_-prefixed environment variables.
func FromEnv() (*Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("mentio")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 8005)
	v.SetDefault("driver", "sqlite")
	v.SetDefault("dsn", "mentio.db")
	v.SetDefault("ai_model", "gpt-4o")
	v.SetDefault("message_limit", 5)

	p := &Profile{
		Mode:               v.GetString("mode"),
		Addr:               v.GetString("addr"),
		Port:               v.GetInt("port"),
		Driver:             v.GetString("driver"),
		DSN:                v.GetString("dsn"),
		JWTSecret:          v.GetString("jwt_secret"),
		JWTAudience:        v.GetString("jwt_audience"),
		ServiceAPIKey:      v.GetString("service_api_key"),
		SubscriptionAPIURL: v.GetString("subscription_api_url"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		AIModel:            v.GetString("ai_model"),
		MessageLimit:       v.GetInt("message_limit"),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

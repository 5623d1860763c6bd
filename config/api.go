package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// API holds the upstream server settings
type API struct {
	Host      string        `json:"host" yaml:"host" validate:"required"`
	Token     string        `json:"token" yaml:"token"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
}

func getAPIConfig(v *viper.Viper) *API {
	return &API{
		Host:      strings.TrimSpace(v.GetString("api.host")),
		Token:     strings.TrimSpace(v.GetString("api.token")),
		Timeout:   getDurationOrDefault(v, "api.timeout", 30*time.Second),
		UserAgent: v.GetString("api.user_agent"),
	}
}

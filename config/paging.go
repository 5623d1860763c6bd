package config

import (
	"github.com/ncobase/pagewalk/paging"
	"github.com/spf13/viper"
)

// Paging holds the traversal defaults
type Paging struct {
	Mode     string `json:"mode" yaml:"mode" validate:"required"`
	MaxPages int    `json:"max_pages" yaml:"max_pages" validate:"gt=0"`
	Limit    int    `json:"limit" yaml:"limit" validate:"gte=0,lte=80"`
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		Mode:     getStringOrDefault(v, "paging.mode", paging.ModeMinID.String()),
		MaxPages: getIntOrDefault(v, "paging.max_pages", 4),
		Limit:    getIntOrDefault(v, "paging.limit", paging.DefaultLimit),
	}
}

// ParsedMode returns the configured lower-bound mode
func (p *Paging) ParsedMode() (paging.Mode, error) {
	return paging.ParseMode(p.Mode)
}

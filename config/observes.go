package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracer config struct
type Tracer struct {
	Endpoint           string        `json:"endpoint" yaml:"endpoint"`
	ServiceName        string        `json:"service_name" yaml:"service_name"`
	Environment        string        `json:"environment" yaml:"environment"`
	SamplingRate       float64       `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"`
	MaxExportBatchSize int           `json:"max_export_batch_size" yaml:"max_export_batch_size"`
	BatchTimeout       time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout      time.Duration `json:"export_timeout" yaml:"export_timeout"`
}

// getTracerConfig get tracer config with defaults
func getTracerConfig(v *viper.Viper) *Tracer {
	return &Tracer{
		Endpoint:           v.GetString("observes.tracer.endpoint"),
		ServiceName:        getStringOrDefault(v, "observes.tracer.service_name", "pagewalk"),
		Environment:        v.GetString("observes.tracer.environment"),
		SamplingRate:       getFloat64OrDefault(v, "observes.tracer.sampling_rate", 1.0),
		MaxExportBatchSize: getIntOrDefault(v, "observes.tracer.max_export_batch_size", 512),
		BatchTimeout:       getDurationOrDefault(v, "observes.tracer.batch_timeout", 5*time.Second),
		ExportTimeout:      getDurationOrDefault(v, "observes.tracer.export_timeout", 30*time.Second),
	}
}

// Observes config struct
type Observes struct {
	Tracer *Tracer `json:"tracer"`
}

// get Observes config
func getObservesConfig(v *viper.Viper) *Observes {
	return &Observes{
		Tracer: getTracerConfig(v),
	}
}

// Metrics config struct
type Metrics struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Textfile  string `json:"textfile" yaml:"textfile"`
}

func getMetricsConfig(v *viper.Viper) *Metrics {
	return &Metrics{
		Enabled:   getBoolOrDefault(v, "metrics.enabled", true),
		Namespace: getStringOrDefault(v, "metrics.namespace", "pagewalk"),
		Textfile:  v.GetString("metrics.textfile"),
	}
}

package logger

import (
	"regexp"
	"strings"

	"github.com/ncobase/pagewalk/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// bearerPattern matches credentials embedded in header values or URLs.
var bearerPattern = regexp.MustCompile(`(?i)(bearer\s+|access_token=)[A-Za-z0-9._~+/=-]+`)

// Desensitizer handles sensitive data masking in log fields
type Desensitizer struct {
	config   *config.Desensitization
	patterns []*regexp.Regexp
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	if cfg == nil {
		cfg = config.DefaultDesensitization()
	}
	d := &Desensitizer{
		config:   cfg,
		patterns: []*regexp.Regexp{bearerPattern},
	}

	// Compile custom patterns
	for _, pattern := range cfg.CustomPatterns {
		if regex, err := regexp.Compile(pattern); err == nil {
			d.patterns = append(d.patterns, regex)
		}
	}

	return d
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if !d.config.Enabled {
		return fields
	}

	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// DesensitizeString masks pattern matches in free text
func (d *Desensitizer) DesensitizeString(str string) string {
	if !d.config.Enabled || str == "" {
		return str
	}

	result := str
	for _, pattern := range d.patterns {
		if pattern == bearerPattern {
			result = pattern.ReplaceAllString(result, "${1}"+d.mask())
			continue
		}
		result = pattern.ReplaceAllString(result, d.mask())
	}
	return result
}

// desensitizeValue processes a single value recursively
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	// Prevent infinite recursion
	if depth > 10 || value == nil {
		return value
	}

	if d.isSensitiveField(key) {
		return d.maskValue(value)
	}

	switch v := value.(type) {
	case string:
		return d.DesensitizeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = d.desensitizeValue(k, val, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if d.isSensitiveField(k) {
				out[k] = d.mask()
				continue
			}
			out[k] = d.DesensitizeString(val)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, val := range v {
			out[i] = d.DesensitizeString(val)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}

	lowerName := strings.ToLower(fieldName)
	for _, sensitiveField := range d.config.SensitiveFields {
		lowerSensitiveField := strings.ToLower(sensitiveField)
		if d.config.ExactFieldMatch {
			if lowerName == lowerSensitiveField {
				return true
			}
		} else if strings.Contains(lowerName, lowerSensitiveField) {
			return true
		}
	}
	return false
}

// maskValue masks sensitive values with fixed-length replacement
func (d *Desensitizer) maskValue(value any) any {
	if s, ok := value.(string); ok && s == "" {
		return s
	}
	return d.mask()
}

func (d *Desensitizer) mask() string {
	return strings.Repeat(d.config.MaskChar, d.config.FixedMaskLength)
}

// desensitizeHook masks entry fields and message before formatting
type desensitizeHook struct {
	d *Desensitizer
}

// Levels returns all log levels
func (h *desensitizeHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire rewrites the entry in place
func (h *desensitizeHook) Fire(entry *logrus.Entry) error {
	entry.Data = h.d.DesensitizeFields(entry.Data)
	entry.Message = h.d.DesensitizeString(entry.Message)
	return nil
}

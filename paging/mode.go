package paging

import (
	"encoding/json"
	"strings"

	"github.com/ncobase/pagewalk/ecode"
)

// Mode selects which cursor field carries the lower bound.
type Mode int

const (
	// ModeMinID sends the lower bound as min_id.
	ModeMinID Mode = iota
	// ModeSinceID sends the lower bound as since_id.
	ModeSinceID
)

// String returns the query parameter name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMinID:
		return "min_id"
	case ModeSinceID:
		return "since_id"
	}
	return "unknown"
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeMinID || m == ModeSinceID
}

// ParseMode parses "min_id" or "since_id" (dashes and case are ignored).
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "min_id", "minid", "min":
		return ModeMinID, nil
	case "since_id", "sinceid", "since":
		return ModeSinceID, nil
	}
	return 0, ecode.InvalidArgument(ecode.FieldIsInvalid("mode") + ": " + s)
}

// MarshalJSON encodes the mode as its string name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its string name.
func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ecode.Parse("mode", err)
	}
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

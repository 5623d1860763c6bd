package paging

import (
	"encoding/base64"
	"encoding/json"

	"github.com/ncobase/pagewalk/ecode"
)

// Cursor is a resumable traversal position.
type Cursor struct {
	Mode       Mode   `json:"mode"`
	LowerBound uint64 `json:"lower_bound,omitempty"`
	MaxID      string `json:"max_id"`
}

// Request returns a request that resumes the traversal at c.
func (c Cursor) Request(maxPages, limit int) Request {
	return Request{
		LowerBound: c.LowerBound,
		Mode:       c.Mode,
		MaxPages:   maxPages,
		Limit:      limit,
		StartMaxID: c.MaxID,
	}
}

// EncodeCursor encodes a cursor to an opaque string
func EncodeCursor(c Cursor) string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor decodes an opaque cursor string
func DecodeCursor(cursor string) (Cursor, error) {
	var c Cursor
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return c, ecode.Parse(ecode.FieldIsInvalid("cursor"), err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, ecode.Parse(ecode.FieldIsInvalid("cursor"), err)
	}
	if c.MaxID == "" {
		return c, ecode.Parse(ecode.FieldIsEmpty("cursor max_id"), nil)
	}
	if _, err := ParseID(c.MaxID); err != nil {
		return c, err
	}
	return c, nil
}

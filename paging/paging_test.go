package paging

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/ncobase/pagewalk/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequest(t *testing.T) {
	cases := map[int]int{-1: DefaultLimit, 0: DefaultLimit, 1: 1, 40: 40, 80: 80, 81: DefaultLimit}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeRequest(Request{Limit: in}).Limit, "limit %d", in)
	}
}

func TestRequestOptions(t *testing.T) {
	opts := Request{Mode: ModeSinceID, Limit: 20}.Options("")
	assert.Equal(t, CursorOptions{Limit: 20}, opts)

	opts = Request{LowerBound: 7, Mode: ModeMinID, Limit: 20}.Options("99")
	assert.Equal(t, CursorOptions{MinID: "7", MaxID: "99", Limit: 20}, opts)

	opts = Request{LowerBound: 7, Mode: ModeSinceID}.Options("99")
	assert.Equal(t, CursorOptions{SinceID: "7", MaxID: "99"}, opts)

	assert.Equal(t, "5", opts.WithMaxID("5").MaxID)
	assert.Equal(t, "99", opts.MaxID)
}

func TestPageExhausted(t *testing.T) {
	var nilPage *Page[stamped]
	assert.True(t, nilPage.Exhausted())
	assert.True(t, (&Page[stamped]{}).Exhausted())
	assert.False(t, (&Page[stamped]{NextMaxID: "3"}).Exhausted())
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"min_id", "MIN_ID", "min-id", "minid", "min", " min_id "} {
		m, err := ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ModeMinID, m)
	}
	for _, s := range []string{"since_id", "Since-Id", "sinceid", "since"} {
		m, err := ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, ModeSinceID, m)
	}
	for _, s := range []string{"", "max_id", "newest"} {
		_, err := ParseMode(s)
		assert.ErrorIs(t, err, ecode.ErrInvalidArgument, s)
	}
}

func TestModeJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Mode Mode `json:"mode"`
	}{ModeSinceID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"since_id"}`, string(b))

	var m Mode
	require.NoError(t, json.Unmarshal([]byte(`"min_id"`), &m))
	assert.Equal(t, ModeMinID, m)
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &m))
	assert.ErrorIs(t, json.Unmarshal([]byte(`3`), &m), ecode.ErrParse)
}

func TestDecodeCursorErrors(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"not base64":     "%%%",
		"not json":       enc("nope"),
		"missing max_id": enc(`{"mode":"min_id","lower_bound":3}`),
		"bad max_id":     enc(`{"mode":"min_id","max_id":"x1"}`),
		"bad mode":       enc(`{"mode":"oldest","max_id":"5"}`),
	}
	for name, cursor := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(cursor)
			assert.Error(t, err)
		})
	}
}

func TestResultCursor(t *testing.T) {
	req := Request{LowerBound: 12, Mode: ModeSinceID, MaxPages: 2}

	_, ok := (&Result[stamped]{Exhausted: true}).Cursor(req)
	assert.False(t, ok)

	c, ok := (&Result[stamped]{NextMaxID: "40"}).Cursor(req)
	require.True(t, ok)
	assert.Equal(t, Cursor{Mode: ModeSinceID, LowerBound: 12, MaxID: "40"}, c)

	resumed := c.Request(3, 20)
	assert.Equal(t, Request{LowerBound: 12, Mode: ModeSinceID, MaxPages: 3, Limit: 20, StartMaxID: "40"}, resumed)
}

package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfo(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	info := GetVersionInfo()
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, "pagewalk/1.2.3", UserAgent())
	assert.True(t, strings.HasPrefix(info.String(), "Version: 1.2.3\n"))

	s, err := info.JSON()
	require.NoError(t, err)
	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(s), &decoded))
	assert.Equal(t, info, decoded)
}

package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, "JE-000042")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, key, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(decodedDate), "date should match after decode")
	assert.Equal(t, "JE-000042", key)

	// Non-UTC input is normalised.
	local := time.Date(2023, 5, 15, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))
	decodedDate, _, err = DecodeToken(EncodeToken(local, "JE-1"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedDate))
	assert.Equal(t, time.UTC, decodedDate.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("yesterday|JE-1"))
	_, _, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}

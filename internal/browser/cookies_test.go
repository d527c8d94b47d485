package browser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieRoundTrip_StripsSameSiteOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	saved := []Cookie{
		{
			Name:     "hhtoken",
			Value:    "abc123",
			Domain:   ".hh.ru",
			Path:     "/",
			Expires:  1893456000,
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
		},
		{
			Name:   "regions",
			Value:  "1",
			Domain: "hh.ru",
			Path:   "/",
		},
	}

	require.NoError(t, SaveCookies(path, saved))

	loaded, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	//sameSite must be gone after load, everything else intact
	assert.Equal(t, "", loaded[0].SameSite)
	assert.Equal(t, saved[0].Name, loaded[0].Name)
	assert.Equal(t, saved[0].Value, loaded[0].Value)
	assert.Equal(t, saved[0].Domain, loaded[0].Domain)
	assert.Equal(t, saved[0].Path, loaded[0].Path)
	assert.Equal(t, saved[0].Expires, loaded[0].Expires)
	assert.True(t, loaded[0].HTTPOnly)
	assert.True(t, loaded[0].Secure)
	assert.Equal(t, saved[1], loaded[1])
}

func TestLoadCookies_MissingFile(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCookieToPlaywright_NoSameSiteWhenStripped(t *testing.T) {
	c := Cookie{Name: "hhtoken", Value: "v", Domain: ".hh.ru", Path: "/"}
	pw := c.ToPlaywright()
	assert.Nil(t, pw.SameSite)
	assert.Equal(t, "hhtoken", pw.Name)
	assert.Nil(t, pw.Expires)
}

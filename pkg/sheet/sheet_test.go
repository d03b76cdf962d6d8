package sheet_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/go-drift/viewbind/pkg/convert"
	"github.com/go-drift/viewbind/pkg/keypath"
	"github.com/go-drift/viewbind/pkg/sheet"
)

const sample = `
bindings:
  volume: {keyPath: settings.volume, checked: true, animated: true}
  retries: {keyPath: "settings.retryCount", format: "precision=0"}
  price:
    keyPath: items[0].price
    checked: false
    format: "precision=2,locale=de-CH,unit=CHF"
  nickname: settings.nickname
`

func TestParse(t *testing.T) {
	s, err := sheet.Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, s, 4)

	vol, ok := s.Lookup("volume")
	require.True(t, ok)
	assert.Equal(t, "settings.volume", vol.KeyPath().String())
	assert.True(t, vol.CheckedOnInput())
	assert.True(t, vol.Animated())
	assert.Equal(t, convert.DefaultFormat, vol.Format())

	retries, _ := s.Lookup("retries")
	assert.Equal(t, 0, retries.Format().Precision)
	assert.True(t, retries.CheckedOnInput(), "checked defaults to true")

	price, _ := s.Lookup("price")
	assert.False(t, price.CheckedOnInput())
	assert.False(t, price.Animated())
	assert.Equal(t, convert.Format{Precision: 2, Locale: language.MustParse("de-CH"), Unit: "CHF"}, price.Format())

	nick, _ := s.Lookup("nickname")
	assert.Equal(t, "settings.nickname", nick.KeyPath().String())
}

func TestParseEmpty(t *testing.T) {
	s, err := sheet.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestParseReportsEveryBadEntry(t *testing.T) {
	_, err := sheet.Parse([]byte(`
bindings:
  good: settings.volume
  broken: "settings..volume"
  badFormat: {keyPath: a, format: "precision=x"}
`))
	require.Error(t, err)

	var ee *sheet.EntryError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "badFormat", ee.ID, "entries are checked in sorted order")

	var me *keypath.MalformedKeyPathError
	assert.ErrorAs(t, err, &me)
	assert.Contains(t, err.Error(), `binding "broken" (line 4)`)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := sheet.Parse([]byte("bindings:\n  a: {keyPath: x, animate: true}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "animate"`)

	_, err = sheet.Parse([]byte("binding:\n  a: x\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.bindings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := sheet.Load(path)
	require.NoError(t, err)
	assert.Len(t, s, 4)

	_, err = sheet.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	s, err = sheet.LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s)
}

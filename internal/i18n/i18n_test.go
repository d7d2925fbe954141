// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedInstance(t *testing.T) *I18n {
	t.Helper()
	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  "en",
	}
	require.NoError(t, i.LoadTranslations("locales"))
	return i
}

func TestLoadTranslations(t *testing.T) {
	i := loadedInstance(t)

	assert.NotEmpty(t, i.translations["en"])
	assert.NotEmpty(t, i.translations["bn"])

	// Every English key has a Bengali counterpart.
	for key := range i.translations["en"] {
		_, ok := i.translations["bn"][key]
		assert.True(t, ok, "missing bn translation for %s", key)
	}
}

func TestTranslate(t *testing.T) {
	i := loadedInstance(t)

	en := i.T("en", KeyBidPlaced)
	bn := i.T("bn", KeyBidPlaced)
	assert.NotEqual(t, KeyBidPlaced, en)
	assert.NotEqual(t, KeyBidPlaced, bn)
	assert.NotEqual(t, en, bn)
}

func TestTranslateWithArgs(t *testing.T) {
	i := loadedInstance(t)

	msg := i.T("en", KeyBidWonNotice, "Boro Rice")
	assert.Contains(t, msg, "Boro Rice")
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	i := loadedInstance(t)

	// Unsupported language falls back to the default.
	assert.Equal(t, i.T("en", KeyListingCreated), i.T("fr", KeyListingCreated))
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	i := loadedInstance(t)

	assert.Equal(t, "no.such.key", i.T("en", "no.such.key"))
}

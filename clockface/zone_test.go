// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolveZone(t *testing.T) {
	tests := []struct {
		id     string
		name   string
		offset int
	}{
		{"UTC", "UTC", 0},
		{"Asia/Kolkata", "Asia/Kolkata", 5*3600 + 30*60},
		{"GMT+5", "GMT+05:00", 5 * 3600},
		{"GMT-03:30", "GMT-03:30", -(3*3600 + 30*60)},
		{"GMT+0545", "GMT+05:45", 5*3600 + 45*60},
	}
	at := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		loc, err := ResolveZone(tt.id)
		if !assert.NoError(t, err, tt.id) {
			continue
		}
		assert.Equal(t, tt.name, loc.String(), tt.id)
		_, off := at.In(loc).Zone()
		assert.Equal(t, tt.offset, off, tt.id)
	}
}

func TestResolveZoneInvalid(t *testing.T) {
	for _, id := range []string{"Mars/Olympus", "GMT+24", "GMT+5:7", "GMT+-5", "GMT+12345"} {
		loc, err := ResolveZone(id)
		assert.Error(t, err, id)
		assert.Equal(t, time.UTC, loc, id)
	}
}

func TestTimePattern(t *testing.T) {
	assert.Equal(t, "3:04 PM", TimePattern(language.AmericanEnglish, false))
	assert.Equal(t, "15:04", TimePattern(language.AmericanEnglish, true))
	assert.Equal(t, "15:04", TimePattern(language.MustParse("fr-FR"), false))
	assert.Equal(t, "15:04", TimePattern(language.Und, false))
}

func TestParsePOSIXLocale(t *testing.T) {
	tag, ok := parsePOSIXLocale("en_AU.UTF-8")
	assert.True(t, ok)
	assert.Equal(t, "en-AU", tag.String())

	tag, ok = parsePOSIXLocale("de_DE@euro")
	assert.True(t, ok)
	assert.Equal(t, "de-DE", tag.String())

	for _, s := range []string{"", "C", "POSIX", "C.UTF-8"} {
		_, ok := parsePOSIXLocale(s)
		assert.False(t, ok, s)
	}
}

func TestLocaleFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "en_US.UTF-8")
	t.Setenv("LANG", "fr_FR.UTF-8")
	assert.Equal(t, "en-US", LocaleFromEnv().String())
}

// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

const (
	pattern12 = "3:04 PM"
	pattern24 = "15:04"
)

// Regions that conventionally write times on a 12-hour clock.
var twelveHourRegions = map[string]bool{
	"US": true, "CA": true, "AU": true, "NZ": true, "IN": true,
	"PH": true, "PK": true, "BD": true, "EG": true, "SA": true,
}

// TimePattern returns the short time layout for tag.
func TimePattern(tag language.Tag, hour24 bool) string {
	if hour24 || tag == language.Und {
		return pattern24
	}
	region, conf := tag.Region()
	if conf != language.No && twelveHourRegions[region.String()] {
		return pattern12
	}
	return pattern24
}

// LocaleFromEnv returns the locale named by LC_ALL, LC_TIME or LANG, in
// that order of precedence. It returns language.Und if none is usable.
func LocaleFromEnv() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if tag, ok := parsePOSIXLocale(os.Getenv(key)); ok {
			return tag
		}
	}
	return language.Und
}

// parsePOSIXLocale parses values such as "en_US.UTF-8" or "de_DE@euro".
func parsePOSIXLocale(s string) (language.Tag, bool) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolveZone returns the location named by id. Besides IANA names it
// accepts custom offsets of the form GMT+h, GMT+h:mm and GMT+hhmm (or
// with a minus sign). If id cannot be resolved, ResolveZone returns UTC
// together with the error.
func ResolveZone(id string) (*time.Location, error) {
	if loc, ok := parseOffsetZone(id); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.UTC, fmt.Errorf("clockface: time zone %q: %w", id, err)
	}
	return loc, nil
}

func parseOffsetZone(id string) (*time.Location, bool) {
	rest, ok := strings.CutPrefix(id, "GMT")
	if !ok || rest == "" {
		return nil, false
	}
	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, false
	}
	rest = rest[1:]
	var hh, mm string
	if h, m, found := strings.Cut(rest, ":"); found {
		if len(h) < 1 || len(h) > 2 || len(m) != 2 {
			return nil, false
		}
		hh, mm = h, m
	} else {
		switch len(rest) {
		case 1, 2:
			hh = rest
		case 4:
			hh, mm = rest[:2], rest[2:]
		default:
			return nil, false
		}
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours > 23 {
		return nil, false
	}
	minutes := 0
	if mm != "" {
		if minutes, err = strconv.Atoi(mm); err != nil || minutes > 59 {
			return nil, false
		}
	}
	if strings.ContainsAny(hh+mm, "+-") {
		return nil, false
	}
	name := fmt.Sprintf("GMT%c%02d:%02d", "+-"[(1-sign)/2], hours, minutes)
	return time.FixedZone(name, sign*(hours*3600+minutes*60)), true
}

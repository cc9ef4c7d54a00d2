package market

import (
	"strings"
	"time"

	"finbot/internal/errors"
)

// ParseDate accepts a calendar date as YYYY-MM-DD or YYYYMMDD. Anything else
// is a user-input error, detected before any provider call is made.
func ParseDate(s string) (time.Time, error) {
	layout := "20060102"
	if strings.Contains(s, "-") {
		layout = "2006-01-02"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, errors.ErrBadDateFormat
	}
	return t, nil
}

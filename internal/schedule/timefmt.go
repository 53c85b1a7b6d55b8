package schedule

import (
	"strings"
	"time"
)

// momentTokens maps moment-style format tokens to Go reference-time layout
// fragments. Ordered so longer tokens win at any position ("MMMM" before "M").
var momentTokens = []struct {
	token  string
	layout string
}{
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"D", "2"},
	{"YYYY", "2006"},
	{"YY", "06"},
	{"HH", "15"},
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
}

// Layout converts a moment-style format string ("h:mm a", "MMMM D, YYYY") to
// a Go time layout. Unknown characters pass through as literals.
func Layout(momentFmt string) string {
	var b strings.Builder
	for i := 0; i < len(momentFmt); {
		matched := false
		for _, t := range momentTokens {
			if strings.HasPrefix(momentFmt[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(momentFmt[i])
			i++
		}
	}
	return b.String()
}

// Format renders t with the given moment-style format string.
func Format(t time.Time, momentFmt string) string {
	return t.Format(Layout(momentFmt))
}

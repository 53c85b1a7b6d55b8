package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		moment string
		want   string
	}{
		{"h:mm a", "3:04 pm"},
		{"hh:mm A", "03:04 PM"},
		{"HH:mm", "15:04"},
		{"MMMM D, YYYY", "January 2, 2006"},
		{"DD/MM/YYYY", "02/01/2006"},
		{"ddd, MMM D", "Mon, Jan 2"},
		{"YYYY-MM-DD HH:mm:ss", "2006-01-02 15:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.moment, func(t *testing.T) {
			assert.Equal(t, tt.want, Layout(tt.moment))
		})
	}
}

func TestFormat(t *testing.T) {
	at := time.Date(2026, time.August, 9, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "8:30 pm", Format(at, "h:mm a"))
	assert.Equal(t, "August 9, 2026", Format(at, "MMMM D, YYYY"))
	assert.Equal(t, "20:30", Format(at, "HH:mm"))
}

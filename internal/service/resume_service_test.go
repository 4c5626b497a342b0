package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResume(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want ParsedResume
	}{
		{
			name: "empty",
			text: "  ",
			want: ParsedResume{Missing: []string{"name", "email"}},
		},
		{
			name: "all fields",
			text: "Jane Doe\nEmail: jane.doe@example.com\nPhone: +62 812  3456 7890\nBackend engineer",
			want: ParsedResume{
				Name:    "Jane Doe",
				Email:   "jane.doe@example.com",
				Phone:   "+62 812 3456 7890",
				Missing: []string{},
			},
		},
		{
			name: "first line too long for a name",
			text: "Experienced engineer building scalable distributed systems\njane@example.com",
			want: ParsedResume{
				Email:   "jane@example.com",
				Missing: []string{"name", "phone"},
			},
		},
		{
			name: "contact line skipped",
			text: "jane@example.com\nJane Doe",
			want: ParsedResume{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Missing: []string{"phone"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseResume(tc.text))
		})
	}
}

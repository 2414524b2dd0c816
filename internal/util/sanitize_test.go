package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeGroupName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SJC", "SJC"},
		{"San Jose/Bldg 4", "San_Jose_Bldg_4"},
		{"4th floor", "_4th_floor"},
		{"ams-edge.dc1", "ams_edge_dc1"},
		{"  padded  ", "padded"},
		{"", "ungrouped_location"},
		{"already_valid_1", "already_valid_1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeGroupName(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

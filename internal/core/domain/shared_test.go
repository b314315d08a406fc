package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_Valid(t *testing.T) {
	tests := []struct {
		id   ID
		want bool
	}{
		{"a11ce0000000000000000001", true},
		{"AABBCCDDEE112233AABBCCDD", true},
		{"", false},
		{"a11ce0", false},
		{"a11ce00000000000000000012", false},
		{"zz1ce0000000000000000001", false},
		{"a11ce000-0000-0000-0000-000000000001", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Valid())
		})
	}
}

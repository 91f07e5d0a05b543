package phone_test

import (
	"hotelpms/shared/phone"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		regions  []string
		expected string
		wantErr  bool
	}{
		{name: "local number default region", phone: "98765 43210", expected: "+919876543210"},
		{name: "already international", phone: "+1 415 555 2671", regions: []string{"IN"}, expected: "+14155552671"},
		{name: "second region matches", phone: "(415) 555-2671", regions: []string{"GB", "US"}, expected: "+14155552671"},
		{name: "empty", phone: "  ", wantErr: true},
		{name: "garbage", phone: "call me", wantErr: true},
		{name: "too short", phone: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := phone.Normalize(tt.phone, tt.regions)

			if tt.wantErr {
				assert.ErrorIs(t, err, phone.ErrInvalidPhone)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, normalized)
		})
	}
}

package phone_test

import (
	"testing"

	"go-candidate-backend/pkg/phone"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name        string
		callingCode string
		number      string
		want        string
		wantErr     error
	}{
		{"US number", "+1", "2025550123", "+12025550123", nil},
		{"US number with spaces", "+1 ", " 2025550123", "+12025550123", nil},
		{"Romanian mobile", "+40", "721234567", "+40721234567", nil},
		{"too short", "+1", "20255", "", phone.ErrInvalid},
		{"letters", "+1", "not-a-number", "", phone.ErrUnparsable},
		{"missing calling code", "", "2025550123", "", phone.ErrUnparsable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := phone.NormalizeE164(tt.callingCode, tt.number)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

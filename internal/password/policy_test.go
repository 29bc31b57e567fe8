package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "meets all rules", in: "Password123", want: true},
		{name: "long alphanumeric", in: "Abcdefghij1234567890", want: true},
		{name: "minimum length", in: "Abcdef12", want: true},
		{name: "too short", in: "PASS123", want: false},
		{name: "no uppercase", in: "password123", want: false},
		{name: "no lowercase", in: "PASSWORD123", want: false},
		{name: "no digit", in: "Passwordxyz", want: false},
		{name: "only lowercase", in: "password", want: false},
		{name: "special character", in: "Password123!", want: false},
		{name: "whitespace", in: "Password 123", want: false},
		{name: "non-ascii letter", in: "Pässword123", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsStrong(tt.in))
		})
	}
}

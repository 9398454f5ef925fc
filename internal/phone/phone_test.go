package phone

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToE164(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"+", ""},
		{"09171234567", "+639171234567"},
		{"0917-123-4567", "+639171234567"},
		{"(0917) 123 4567", "+639171234567"},
		{"9171234567", "+639171234567"},
		{"639171234567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"+1 (555) 010-9999", "+15550109999"},
		{"12345", "12345"},
		{"032-255-1234", "0322551234"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToE164(tt.in))
		})
	}
}

func TestToLocal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"+639171234567", "09171234567"},
		{"639171234567", "09171234567"},
		{"9171234567", "09171234567"},
		{"09171234567", "09171234567"},
		{"+1 555 010 9999", "15550109999"},
		{"12345", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToLocal(tt.in))
		})
	}
}

func TestLocalRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		local := fmt.Sprintf("09%09d", i*19999991%1000000000)
		assert.Equal(t, local, ToLocal(ToE164(local)), local)
	}
}

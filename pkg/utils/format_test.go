package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		arg  float64
		want string
	}{
		{name: "hours", arg: 3661.234, want: "1h01m01.234"},
		{name: "minutes", arg: 65.5, want: "1m05.500"},
		{name: "seconds", arg: 5.25, want: "5.250"},
		{name: "zero", arg: 0, want: "0.000"},
		{name: "exact minute", arg: 60, want: "1m00.000"},
		{name: "long race", arg: 7322.001, want: "2h02m02.001"},
		{name: "rounds up across minute", arg: 119.9996, want: "2m00.000"},
		{name: "rounds up across hour", arg: 3599.9997, want: "1h00m00.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.arg))
		})
	}
}

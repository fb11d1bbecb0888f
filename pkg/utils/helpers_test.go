package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

func TestFromDataToSpec(t *testing.T) {
	got, err := FromDataToSpec[sample]([]byte(`{"name":"a","value":1.5}`))
	require.NoError(t, err)
	assert.Equal(t, &sample{Name: "a", Value: 1.5}, got)

	_, err = FromDataToSpec[sample]([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestFromYAMLToSpec(t *testing.T) {
	got, err := FromYAMLToSpec[sample]([]byte("name: b\nvalue: 2.25\n"))
	require.NoError(t, err)
	assert.Equal(t, &sample{Name: "b", Value: 2.25}, got)

	_, err = FromYAMLToSpec[sample]([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		x, value  float64
		tolerance float64
		want      bool
	}{
		{name: "equal", x: 1, value: 1, tolerance: 0, want: true},
		{name: "within", x: 1.05, value: 1, tolerance: 0.1, want: true},
		{name: "outside", x: 1.2, value: 1, tolerance: 0.1, want: false},
		{name: "zero reference", x: 0.1, value: 0, tolerance: 1, want: false},
		{name: "negative tolerance", x: 1.01, value: 1, tolerance: -1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinTolerance(tt.x, tt.value, tt.tolerance))
		})
	}
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacío usa los defaults", PageRequest{}, 20, 0},
		{"limit negativo vuelve al default", PageRequest{Limit: -5, Offset: 3}, 20, 3},
		{"limit excesivo se recorta a 100", PageRequest{Limit: 500}, 100, 0},
		{"offset negativo vuelve a cero", PageRequest{Limit: 10, Offset: -1}, 10, 0},
		{"valores válidos se respetan", PageRequest{Limit: 50, Offset: 25}, 50, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.DefaultPage()
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
			assert.Equal(t, tc.wantOffset, tc.in.Offset)
		})
	}
}

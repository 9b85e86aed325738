package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          Params
	}{
		{name: "defaults", limit: 0, offset: 0, want: Params{Limit: 10, Offset: 0}},
		{name: "negative limit", limit: -3, offset: 5, want: Params{Limit: 10, Offset: 5}},
		{name: "capped", limit: 500, offset: 0, want: Params{Limit: 100, Offset: 0}},
		{name: "negative offset", limit: 20, offset: -1, want: Params{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultParams(tt.limit, tt.offset, 10, 100))
		})
	}
}

func TestPageParams(t *testing.T) {
	assert.Equal(t, Params{Limit: 20, Offset: 40}, Page{Offset: 40}.Params(20, 100))
}

func TestNewMeta(t *testing.T) {
	assert.True(t, NewMeta(Params{Limit: 10, Offset: 0}, 11).HasMore)
	assert.False(t, NewMeta(Params{Limit: 10, Offset: 10}, 20).HasMore)

	meta := NewMeta(Params{Limit: 5, Offset: 15}, 17)
	assert.Equal(t, Meta{Total: 17, Limit: 5, Offset: 15, HasMore: false}, meta)
}

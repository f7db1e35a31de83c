package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"defaults", Params{}, nil},
		{"offset mode", Params{Limit: 5, Offset: 10}, nil},
		{"page mode", Params{Page: 2, PageSize: 20}, nil},
		{"negative limit", Params{Limit: -1}, ErrNegative},
		{"mixed modes", Params{Offset: 3, Page: 1, PageSize: 5}, ErrMixedPaginationModes},
		{"page size alone", Params{PageSize: 5}, ErrPageSizeWithoutPage},
		{"page alone", Params{Page: 2}, ErrPageWithoutPageSize},
		{"huge first page", Params{Page: 1, PageSize: math.MaxInt}, nil},
		{"page offset overflows", Params{Page: 3, PageSize: math.MaxInt}, ErrOffsetOverflow},
		{"page number overflows", Params{Page: math.MaxInt, PageSize: 2}, ErrOffsetOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	tests := []struct {
		name   string
		params Params
		want   []int
	}{
		{"all", Params{}, items},
		{"limit", Params{Limit: 3}, []int{0, 1, 2}},
		{"offset", Params{Offset: 5}, []int{5, 6}},
		{"offset past end", Params{Offset: 50}, []int{}},
		{"limit and offset", Params{Limit: 2, Offset: 1}, []int{1, 2}},
		{"second page", Params{Page: 2, PageSize: 3}, []int{3, 4, 5}},
		{"last partial page", Params{Page: 3, PageSize: 3}, []int{6}},
		{"page past end", Params{Page: 9, PageSize: 3}, []int{}},
		{"huge first page", Params{Page: 1, PageSize: math.MaxInt}, items},
		{"overflowing page offset", Params{Page: 3, PageSize: math.MaxInt}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(items, tt.params))
		})
	}
}

func TestParams_TotalPages(t *testing.T) {
	assert.Equal(t, 0, Params{}.TotalPages(10))
	assert.Equal(t, 0, Params{Page: 1, PageSize: 5}.TotalPages(0))
	assert.Equal(t, 2, Params{Page: 1, PageSize: 5}.TotalPages(10))
	assert.Equal(t, 3, Params{Page: 1, PageSize: 5}.TotalPages(11))
	assert.Equal(t, 1, Params{Page: 1, PageSize: math.MaxInt}.TotalPages(11))
}

func TestParams_EffectiveOffsetSaturates(t *testing.T) {
	assert.Equal(t, 6, Params{Page: 3, PageSize: 3}.EffectiveOffset())
	assert.Equal(t, math.MaxInt, Params{Page: 3, PageSize: math.MaxInt}.EffectiveOffset())
}

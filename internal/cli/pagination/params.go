package pagination

import (
	"errors"
	"math"

	"github.com/spf13/cobra"
)

// Validation errors.
var (
	ErrNegative             = errors.New("pagination values cannot be negative")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrPageWithoutPageSize  = errors.New("--page requires --page-size to be set")
	ErrOffsetOverflow       = errors.New("--page and --page-size select rows beyond the addressable range")
)

// Params holds the pagination flags. Offset-based (Limit/Offset) and
// page-based (Page/PageSize) modes are mutually exclusive. A zero Limit
// means no limit.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// AddFlags registers the pagination flags on cmd.
func (p *Params) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "maximum number of rows to show (0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "number of rows to skip")
	cmd.Flags().IntVar(&p.Page, "page", 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "rows per page")
}

// Validate checks that the flags are consistent.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Offset < 0 || p.Page < 0 || p.PageSize < 0 {
		return ErrNegative
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.Page == 0 && p.PageSize > 0 {
		return ErrPageSizeWithoutPage
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutPageSize
	}
	if p.Page > 1 && p.PageSize > math.MaxInt/(p.Page-1) {
		return ErrOffsetOverflow
	}
	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// EffectiveOffset returns the number of rows to skip. A page offset that does
// not fit in an int saturates at math.MaxInt.
func (p Params) EffectiveOffset() int {
	if !p.IsPageBased() {
		return p.Offset
	}
	if p.Page > 1 && p.PageSize > math.MaxInt/(p.Page-1) {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// EffectiveLimit returns the maximum number of rows, 0 for all.
func (p Params) EffectiveLimit() int {
	if p.IsPageBased() {
		return p.PageSize
	}
	return p.Limit
}

// TotalPages returns the page count for total rows in page-based mode, 0
// otherwise.
func (p Params) TotalPages(total int) int {
	if !p.IsPageBased() || total <= 0 {
		return 0
	}
	return (total-1)/p.PageSize + 1
}

// Apply returns the window of items selected by p.
func Apply[T any](items []T, p Params) []T {
	offset := p.EffectiveOffset()
	if offset < 0 || offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit := p.EffectiveLimit(); limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

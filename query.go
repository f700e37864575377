package nscache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/nscache/internal/keys"
)

// Sort names one ordering of a derived result. The zero value means "no
// sort specified".
type Sort struct {
	Field string
	Desc  bool
}

const unsortedToken = "unsorted"

// token is the canonical key segment for this sort. An empty Field always
// yields one sentinel no matter what Desc says, so structurally equivalent
// "no sort" queries cannot fragment into separate cache entries.
func (s Sort) token() string {
	if s.Field == "" {
		return unsortedToken
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return keys.Escape(s.Field) + "_" + dir
}

// Query identifies one derived result variant: a page of a given size under
// one ordering. Queries compare by value; structurally equal queries always
// address the same cache entry.
type Query struct {
	Page int
	Size int
	Sort Sort
}

// token is deterministic in the query's logical parameters. Negative page
// and size normalize to 0.
func (q Query) token() string {
	page, size := q.Page, q.Size
	if page < 0 {
		page = 0
	}
	if size < 0 {
		size = 0
	}
	return fmt.Sprintf("p%d:s%d:%s", page, size, q.Sort.token())
}

// Loader fills a miss from the source of truth. found=false means the
// source has nothing worth caching for this query.
type Loader[V any] func(ctx context.Context) (V, bool, error)

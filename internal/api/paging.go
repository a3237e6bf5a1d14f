package api

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// DefaultPageSize is the recommended page size for paged queries.
const DefaultPageSize = 500

// FetchAllPages drives base against the resource with an increasing start
// offset until a short page, accumulating every page into one slice.
// base.Start is managed by the pager; base.Max is the page size (defaulted
// when zero). A success payload that is not a well-formed list ends the
// data: logged, not fatal. An error ends the fetch and is returned together
// with the records accumulated so far, so the caller can treat it as a
// partial fetch. No retry happens at this layer.
func FetchAllPages[T any](ctx context.Context, c *Client, resource string, base Query) ([]T, error) {
	pageSize := base.Max
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []T
	for offset := 0; ; offset += pageSize {
		q := base
		q.Max = pageSize
		q.Start = offset

		body, err := c.Query(ctx, resource, q)
		if err != nil {
			return all, err
		}

		var page []T
		if err := sonic.Unmarshal(body, &page); err != nil {
			util.LogWarnf("Query %s returned a non-list payload at offset %d, treating as end of data", resource, offset)
			break
		}

		all = append(all, page...)
		util.LogDebug(fmt.Sprintf("Fetched %d %s records at offset %d", len(page), resource, offset))

		if len(page) < pageSize {
			break
		}
	}
	return all, nil
}

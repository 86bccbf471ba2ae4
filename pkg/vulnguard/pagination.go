package vulnguard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Page is one page of a cursor-paginated REST listing. Data is nil when the
// response body had no data key at all, as opposed to an empty array.
type Page struct {
	Data  []json.RawMessage
	Links PageLinks
}

// PageGetter fetches pages of a cursor-paginated listing. GetPage issues the
// first request with normal version and parameter handling; GetNextPage
// follows an opaque cursor link verbatim, suppressing version and parameter
// re-injection because the link already carries a fully-qualified query
// string.
type PageGetter interface {
	GetPage(ctx context.Context, path string, query url.Values) (*Page, error)
	GetNextPage(ctx context.Context, link string) (*Page, error)
}

// CollectPages walks a cursor-paginated listing and merges the data arrays
// of every page, in page order. The walk stops when a page has no next link,
// when the next link equals the page's self link or any previously visited
// link (cursor loop), or when a subsequent page carries no records. It
// returns the complete record set or an error, never a truncated list.
func CollectPages(ctx context.Context, getter PageGetter, path string, query url.Values) ([]json.RawMessage, error) {
	page, err := getter.GetPage(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if page.Data == nil {
		return nil, fmt.Errorf("first page has no data: %w", ErrMissingResponseField)
	}

	records := page.Data
	seen := map[string]struct{}{}

	if page.Links.Self != "" {
		seen[page.Links.Self] = struct{}{}
	}

	for {
		next := page.Links.Next
		if next == "" || next == page.Links.Self {
			return records, nil
		}

		if _, visited := seen[next]; visited {
			return records, nil
		}

		seen[next] = struct{}{}

		page, err = getter.GetNextPage(ctx, next)
		if err != nil {
			return nil, err
		}

		if len(page.Data) == 0 {
			return records, nil
		}

		records = append(records, page.Data...)

		if page.Links.Self != "" {
			seen[page.Links.Self] = struct{}{}
		}
	}
}

// DecodeRecords unmarshals raw page records into typed values.
func DecodeRecords[T any](records []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(records))

	for _, record := range records {
		var item T

		err := json.Unmarshal(record, &item)
		if err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

package vulnguard_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

// fakePageGetter serves a canned sequence of pages keyed by link.
type fakePageGetter struct {
	first *vulnguard.Page
	pages map[string]*vulnguard.Page
	calls []string
}

func (f *fakePageGetter) GetPage(ctx context.Context, path string, query url.Values) (*vulnguard.Page, error) {
	f.calls = append(f.calls, "first:"+path)

	return f.first, nil
}

func (f *fakePageGetter) GetNextPage(ctx context.Context, link string) (*vulnguard.Page, error) {
	f.calls = append(f.calls, "next:"+link)

	return f.pages[link], nil
}

func records(ids ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, json.RawMessage(`{"id": "`+id+`"}`))
	}

	return out
}

func TestCollectPages(t *testing.T) {
	t.Parallel()
	t.Run("merges pages in order", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{
				Data:  records("1", "2"),
				Links: vulnguard.PageLinks{Self: "/p?c=0", Next: "/p?c=1"},
			},
			pages: map[string]*vulnguard.Page{
				"/p?c=1": {
					Data:  records("3"),
					Links: vulnguard.PageLinks{Self: "/p?c=1", Next: "/p?c=2"},
				},
				"/p?c=2": {
					Data:  records("4", "5"),
					Links: vulnguard.PageLinks{Self: "/p?c=2"},
				},
			},
		}

		result, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.NoError(t, err)
		require.Len(t, result, 5)

		items, err := vulnguard.DecodeRecords[struct {
			ID string `json:"id"`
		}](result)
		require.NoError(t, err)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, "5", items[4].ID)
	})

	t.Run("stops when next equals self", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{
				Data:  records("1"),
				Links: vulnguard.PageLinks{Self: "/p?c=0", Next: "/p?c=0"},
			},
		}

		result, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Len(t, getter.calls, 1)
	})

	t.Run("stops on cursor loops", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{
				Data:  records("1"),
				Links: vulnguard.PageLinks{Self: "/p?c=0", Next: "/p?c=1"},
			},
			pages: map[string]*vulnguard.Page{
				"/p?c=1": {
					Data:  records("2"),
					Links: vulnguard.PageLinks{Self: "/p?c=1", Next: "/p?c=0"},
				},
			},
		}

		result, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("stops on an empty subsequent page", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{
				Data:  records("1"),
				Links: vulnguard.PageLinks{Self: "/p?c=0", Next: "/p?c=1"},
			},
			pages: map[string]*vulnguard.Page{
				"/p?c=1": {
					Links: vulnguard.PageLinks{Self: "/p?c=1", Next: "/p?c=2"},
				},
			},
		}

		result, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("missing data on the first page is an error", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{Links: vulnguard.PageLinks{Self: "/p?c=0"}},
		}

		_, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.ErrorIs(t, err, vulnguard.ErrMissingResponseField)
	})

	t.Run("empty first page is a valid empty listing", func(t *testing.T) {
		t.Parallel()

		getter := &fakePageGetter{
			first: &vulnguard.Page{Data: []json.RawMessage{}},
		}

		result, err := vulnguard.CollectPages(context.Background(), getter, "p", nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	_, err := vulnguard.DecodeRecords[struct{ ID string }]([]json.RawMessage{json.RawMessage(`not json`)})
	require.Error(t, err)
}

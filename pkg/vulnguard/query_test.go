package vulnguard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
)

func TestProjectListOptions_ToValues(t *testing.T) {
	t.Parallel()
	t.Run("nil options yield empty values", func(t *testing.T) {
		t.Parallel()

		var opts *vulnguard.ProjectListOptions

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("booleans serialize lowercase", func(t *testing.T) {
		t.Parallel()

		opts := &vulnguard.ProjectListOptions{
			MetaLatestIssueCounts: vulnguard.Bool(true),
			MetaLatestDepTotal:    vulnguard.Bool(false),
		}

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Equal(t, "true", values.Get("meta.latest_issue_counts"))
		assert.Equal(t, "false", values.Get("meta.latest_dependency_total"))
	})

	t.Run("lists are comma joined", func(t *testing.T) {
		t.Parallel()

		opts := &vulnguard.ProjectListOptions{
			Origins: []string{"github", "cli"},
			Types:   []string{"npm"},
		}

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Equal(t, "github,cli", values.Get("origins"))
		assert.Equal(t, "npm", values.Get("types"))
	})

	t.Run("tags serialize as key colon value tokens", func(t *testing.T) {
		t.Parallel()

		opts := &vulnguard.ProjectListOptions{
			Tags: []vulnguard.Tag{
				{Key: "team", Value: "platform"},
				{Key: "env", Value: "prod"},
			},
		}

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Equal(t, "team:platform,env:prod", values.Get("tags"))
	})

	t.Run("malformed tags fail before serialization", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			tags []vulnguard.Tag
		}{
			{name: "missing value", tags: []vulnguard.Tag{{Key: "team"}}},
			{name: "missing key", tags: []vulnguard.Tag{{Value: "platform"}}},
			{name: "empty tag", tags: []vulnguard.Tag{{}}},
		}

		for _, testCase := range tests {
			t.Run(testCase.name, func(t *testing.T) {
				t.Parallel()

				opts := &vulnguard.ProjectListOptions{Tags: testCase.tags}

				_, err := opts.ToValues()
				require.ErrorIs(t, err, vulnguard.ErrMalformedTagFilter)
			})
		}
	})

	t.Run("limit and cursors", func(t *testing.T) {
		t.Parallel()

		opts := &vulnguard.ProjectListOptions{
			Limit:         25,
			StartingAfter: "cursor-a",
		}

		values, err := opts.ToValues()
		require.NoError(t, err)
		assert.Equal(t, "25", values.Get("limit"))
		assert.Equal(t, "cursor-a", values.Get("starting_after"))
		assert.False(t, values.Has("ending_before"))
	})
}

func TestFormatTagFilter(t *testing.T) {
	t.Parallel()

	filter, err := vulnguard.FormatTagFilter(nil)
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = vulnguard.FormatTagFilter([]vulnguard.Tag{{Key: "k", Value: "v"}})
	require.NoError(t, err)
	assert.Equal(t, "k:v", filter)
}

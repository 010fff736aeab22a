package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/unfurl"
	main "github.com/fwojciec/unfurl/cmd/unfurl"
	"github.com/fwojciec/unfurl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(url, title, language string) *unfurl.Record {
	return &unfurl.Record{
		ID:        "rec-" + title,
		FetchedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Metadata: unfurl.Metadata{
			URL:         url,
			Title:       title,
			Description: "About " + title,
			Language:    language,
		},
	}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one line per record", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordsFn: func(context.Context, unfurl.RecordFilter) ([]*unfurl.Record, error) {
				return []*unfurl.Record{
					storedRecord("https://example.com/a", "Alpha", "en"),
					storedRecord("https://example.com/b", "Beta", ""),
				}, nil
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"2026-03-14  en  https://example.com/a  Alpha\n"+
				"2026-03-14  -  https://example.com/b  Beta\n",
			stdout.String())
	})

	t.Run("passes language and limit to the filter", func(t *testing.T) {
		t.Parallel()

		var got unfurl.RecordFilter
		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter unfurl.RecordFilter) ([]*unfurl.Record, error) {
				got = filter
				return nil, nil
			},
		}

		err := (&main.ListCmd{Language: "pl", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Language)
		assert.Equal(t, "pl", *got.Language)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("explains an empty database", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordsFn: func(context.Context, unfurl.RecordFilter) ([]*unfurl.Record, error) {
				return nil, nil
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No records found")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the stored record", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordByURLFn: func(_ context.Context, url string) (*unfurl.Record, error) {
				return storedRecord(url, "Alpha", "en"), nil
			},
		}

		err := (&main.ShowCmd{URL: "https://example.com/a", Format: "text"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Alpha\nAbout Alpha\nhttps://example.com/a\n\n", stdout.String())
	})

	t.Run("hints when no record exists", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Records = &mock.RecordService{
			FindRecordByURLFn: func(context.Context, string) (*unfurl.Record, error) {
				return nil, unfurl.Errorf(unfurl.ENOTFOUND, "record not found")
			},
		}

		err := (&main.ShowCmd{URL: "https://example.com/missing", Format: "text"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, unfurl.ENOTFOUND, unfurl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unfurl list")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Records = &mock.RecordService{}

		err := (&main.DeleteCmd{URL: "https://example.com/a"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, unfurl.EINVALID, unfurl.ErrorCode(err))
	})

	t.Run("deletes the record by ID", func(t *testing.T) {
		t.Parallel()

		var deleted string
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordByURLFn: func(_ context.Context, url string) (*unfurl.Record, error) {
				return storedRecord(url, "Alpha", "en"), nil
			},
			DeleteRecordFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		err := (&main.DeleteCmd{URL: "https://example.com/a", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "rec-Alpha", deleted)
		assert.Equal(t, "Deleted record for https://example.com/a\n", stdout.String())
	})

	t.Run("returns ENOTFOUND for unknown URL", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Records = &mock.RecordService{
			FindRecordByURLFn: func(context.Context, string) (*unfurl.Record, error) {
				return nil, unfurl.Errorf(unfurl.ENOTFOUND, "record not found")
			},
		}

		err := (&main.DeleteCmd{URL: "https://example.com/missing", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, unfurl.ENOTFOUND, unfurl.ErrorCode(err))
	})
}

// Package batch extracts metadata for many URLs concurrently.
package batch

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Extractor.Concurrency is not positive.
const DefaultConcurrency = 4

// falsePositiveRate is the acceptable chance of a unique URL being taken
// for a duplicate.
const falsePositiveRate = 1e-6

// Extractor runs an unfurl.Extractor over a list of URLs and hands every
// successful result to the writers in input order.
type Extractor struct {
	Extractor   unfurl.Extractor
	Writers     []unfurl.MetadataWriter
	Concurrency int
}

// Item is the outcome for a single URL.
type Item struct {
	Position int
	URL      string
	Metadata *unfurl.Metadata
	Err      error
}

// Result holds the outcome of a batch.
type Result struct {
	Items      []Item
	Extracted  int
	Failed     int
	Duplicates int
	Bytes      int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// ExtractAll extracts every distinct URL in urls. A failing URL is recorded
// on its Item and does not stop the others. Items are returned in the order
// URLs first appear. The returned error is non-nil only when ctx ends.
func (b *Extractor) ExtractAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	seen := bloom.NewFilter(uint(len(urls)), falsePositiveRate)
	var unique []string
	for _, url := range urls {
		if seen.Seen(url) {
			result.Duplicates++
			progress(ProgressEvent{Type: ProgressSkipped, URL: url})
			continue
		}
		unique = append(unique, url)
	}

	total := len(unique)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	itemCh := make(chan Item, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range unique {
			g.Go(func() error {
				itemCh <- b.extract(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(itemCh)
	}()

	var completed atomic.Int64
	result.Items = make([]Item, total)
	for item := range itemCh {
		completed.Add(1)
		result.Items[item.Position] = item

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       item.URL,
		}
		if item.Err != nil {
			event.Type = ProgressFailed
			event.Error = item.Err
		}
		progress(event)
	}

	for i := range result.Items {
		item := &result.Items[i]
		if item.Err == nil {
			item.Err = b.write(ctx, item.Metadata)
		}
		if item.Err != nil {
			result.Failed++
			continue
		}
		result.Extracted++
		result.Bytes += len(item.Metadata.Raw)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return result, ctx.Err()
}

func (b *Extractor) extract(ctx context.Context, position int, url string) Item {
	item := Item{Position: position, URL: url}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	item.Metadata, item.Err = b.Extractor.Extract(ctx, url)
	return item
}

func (b *Extractor) write(ctx context.Context, m *unfurl.Metadata) error {
	for _, w := range b.Writers {
		if err := w.WriteMetadata(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

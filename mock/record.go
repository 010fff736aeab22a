package mock

import (
	"context"

	"github.com/fwojciec/unfurl"
)

var _ unfurl.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of unfurl.RecordService.
type RecordService struct {
	CreateRecordFn    func(ctx context.Context, r *unfurl.Record) error
	FindRecordByIDFn  func(ctx context.Context, id string) (*unfurl.Record, error)
	FindRecordByURLFn func(ctx context.Context, url string) (*unfurl.Record, error)
	FindRecordsFn     func(ctx context.Context, filter unfurl.RecordFilter) ([]*unfurl.Record, error)
	DeleteRecordFn    func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, r *unfurl.Record) error {
	return s.CreateRecordFn(ctx, r)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*unfurl.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*unfurl.Record, error) {
	return s.FindRecordByURLFn(ctx, url)
}

func (s *RecordService) FindRecords(ctx context.Context, filter unfurl.RecordFilter) ([]*unfurl.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}

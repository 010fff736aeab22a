package unfurl

import (
	"context"
	"time"
)

// Record is Metadata that has been persisted.
type Record struct {
	ID        string    `json:"id"`
	RawHash   string    `json:"rawHash"`
	FetchedAt time.Time `json:"fetchedAt"`

	Metadata
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	return r.Metadata.Validate()
}

// RecordService represents a service for managing stored metadata.
type RecordService interface {
	// CreateRecord stores a new record, assigning its ID, hash and timestamp.
	// An existing record for the same URL is replaced.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecordByURL retrieves the record stored for url.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByURL(ctx context.Context, url string) (*Record, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Language *string `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MetadataWriter writes extracted metadata to an output sink.
type MetadataWriter interface {
	WriteMetadata(ctx context.Context, m *Metadata) error
}

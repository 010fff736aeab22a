package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ unfurl.RecordService  = (*RecordService)(nil)
	_ unfurl.MetadataWriter = (*RecordService)(nil)
)

const recordColumns = `id, url, title, description, content, language, raw, raw_hash,
	images, keywords, meta_tags, links, fetched_at`

// RecordService implements unfurl.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord stores rec, replacing any record with the same URL.
func (s *RecordService) CreateRecord(ctx context.Context, rec *unfurl.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.FetchedAt = time.Now().UTC()
	rec.RawHash = hashContent(rec.Raw)

	images, err := marshalColumn(nonNil(rec.Images), "images")
	if err != nil {
		return err
	}
	keywords, err := marshalColumn(nonNil(rec.Keywords), "keywords")
	if err != nil {
		return err
	}
	metaTags, err := marshalColumn(nonNil(rec.MetaTags), "meta_tags")
	if err != nil {
		return err
	}
	links, err := marshalColumn(nonNil(rec.Links), "links")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.URL, rec.Title, rec.Description, rec.Content, rec.Language, rec.Raw, rec.RawHash,
		images, keywords, metaTags, links, rec.FetchedAt.Format(time.RFC3339))

	return err
}

// WriteMetadata stores m as a new record.
func (s *RecordService) WriteMetadata(ctx context.Context, m *unfurl.Metadata) error {
	return s.CreateRecord(ctx, &unfurl.Record{Metadata: *m})
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*unfurl.Record, error) {
	return s.findOne(ctx, "id", id)
}

// FindRecordByURL retrieves the record stored for url.
func (s *RecordService) FindRecordByURL(ctx context.Context, url string) (*unfurl.Record, error) {
	return s.findOne(ctx, "url", url)
}

func (s *RecordService) findOne(ctx context.Context, column, value string) (*unfurl.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE "+column+" = ?", value)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unfurl.Errorf(unfurl.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter unfurl.RecordFilter) ([]*unfurl.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*unfurl.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return unfurl.Errorf(unfurl.ENOTFOUND, "record not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*unfurl.Record, error) {
	var rec unfurl.Record
	var images, keywords, metaTags, links, fetchedAt string

	if err := row.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Description, &rec.Content, &rec.Language,
		&rec.Raw, &rec.RawHash, &images, &keywords, &metaTags, &links, &fetchedAt); err != nil {
		return nil, err
	}

	rec.Images = []string{}
	rec.Keywords = []string{}
	rec.MetaTags = []unfurl.MetaTag{}
	rec.Links = []unfurl.Link{}
	if err := unmarshalColumn(images, "images", &rec.Images); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(keywords, "keywords", &rec.Keywords); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(metaTags, "meta_tags", &rec.MetaTags); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(links, "links", &rec.Links); err != nil {
		return nil, err
	}

	var err error
	rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// nonNil keeps nil collections from being stored as JSON null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

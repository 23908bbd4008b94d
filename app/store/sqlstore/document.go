package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/documind-ai/documind/pkg/register"
	"github.com/documind-ai/documind/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.DocumentStore = NewDocumentStore(provider)
	})
}

type DocumentStore struct {
	CommonFields
}

func NewDocumentStore(provider SqlProviderAchieve) *DocumentStore {
	repo := &DocumentStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_DOCUMENT)
	repo.SetAllColumns("id", "user_id", "file_name", "kind", "status", "content", "vector_count", "vector_snapshot", "created_at", "updated_at")
	return repo
}

func (s *DocumentStore) Create(ctx context.Context, data types.Document) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	if data.Status == "" {
		data.Status = types.PROCESSING_STATUS_PENDING
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "file_name", "kind", "status", "content", "vector_count", "vector_snapshot", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.FileName, data.Kind, data.Status, data.Content, data.VectorCount, data.VectorSnapshot, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Document
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DocumentStore) UpdateStatus(ctx context.Context, id string, status types.ProcessingStatus) error {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) UpdateContent(ctx context.Context, id string, content string) error {
	query := sq.Update(s.GetTable()).
		Set("content", content).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) UpdateVectorCount(ctx context.Context, id string, count int) error {
	query := sq.Update(s.GetTable()).
		Set("vector_count", count).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) ListDocuments(ctx context.Context, opts types.GetDocumentsOptions, page, pageSize uint64) ([]types.Document, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Limit(pageSize).Offset((page - 1) * pageSize).OrderBy("created_at DESC")
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Document
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DocumentStore) Total(ctx context.Context, opts types.GetDocumentsOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var total int64
	if err = s.GetReplica(ctx).Get(&total, queryString, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// LoadSnapshot returns the stored index payload, (nil, nil) when the row
// exists without one or does not exist at all.
func (s *DocumentStore) LoadSnapshot(ctx context.Context, id string) ([]byte, error) {
	query := sq.Select("vector_snapshot").From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var snapshot []byte
	if err = s.GetReplica(ctx).Get(&snapshot, queryString, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot, nil
}

func (s *DocumentStore) SaveSnapshot(ctx context.Context, id string, snapshot []byte) error {
	query := sq.Update(s.GetTable()).
		Set("vector_snapshot", snapshot).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) DeleteSnapshot(ctx context.Context, id string) error {
	query := sq.Update(s.GetTable()).
		Set("vector_snapshot", nil).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/documind-ai/documind/pkg/register"
	"github.com/documind-ai/documind/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.TimestampStore = NewTimestampStore(provider)
	})
}

type TimestampStore struct {
	CommonFields
}

func NewTimestampStore(provider SqlProviderAchieve) *TimestampStore {
	repo := &TimestampStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_TIMESTAMPS)
	repo.SetAllColumns("id", "document_id", "entries", "total_topics", "model_used", "created_at", "updated_at")
	return repo
}

func (s *TimestampStore) Create(ctx context.Context, data types.Timestamp) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	if data.TotalTopics == 0 {
		data.TotalTopics = len(data.Entries)
	}
	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.DocumentID, data.Entries, data.TotalTopics, data.ModelUsed, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *TimestampStore) GetByDocument(ctx context.Context, documentID string) (*types.Timestamp, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Timestamp
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *TimestampStore) Delete(ctx context.Context, documentID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

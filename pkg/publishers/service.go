package publishers

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/larlarbooks/larlar/pkg/database"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/larlarbooks/larlar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ListPublishersOptions struct {
	Limit  *int
	Offset *int
	Search *string

	includeTotal bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreatePublisher(ctx context.Context, publisher *models.Publisher) error {
	now := time.Now()
	if publisher.ID == "" {
		publisher.ID = uuid.NewString()
	}
	if publisher.CreatedAt.IsZero() {
		publisher.CreatedAt = now
	}
	publisher.UpdatedAt = publisher.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(publisher).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errcodes.Conflict("User already has a publisher")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) RetrievePublisher(ctx context.Context, id string) (*models.Publisher, error) {
	publisher := &models.Publisher{}
	err := svc.db.
		NewSelect().
		Model(publisher).
		Where("pub.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Publisher")
		}
		return nil, errors.WithStack(err)
	}
	return publisher, nil
}

func (svc *Service) ListPublishersWithTotal(ctx context.Context, opts ListPublishersOptions) ([]*models.Publisher, int, error) {
	opts.includeTotal = true
	return svc.listPublishersWithTotal(ctx, opts)
}

func (svc *Service) listPublishersWithTotal(ctx context.Context, opts ListPublishersOptions) ([]*models.Publisher, int, error) {
	publishers := []*models.Publisher{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&publishers).
		Order("pub.publisher_name ASC")

	if opts.Search != nil && *opts.Search != "" {
		q = q.Where("pub.publisher_name LIKE ? ESCAPE '\\'", database.ContainsPattern(*opts.Search))
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return publishers, total, nil
}

package halls

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for hall operations
type Repository interface {
	Create(ctx context.Context, hall *Hall) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hall, error)
	GetByName(ctx context.Context, name string) (*Hall, error)
	List(ctx context.Context, query HallListQuery) (*PaginatedHalls, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountReferencingEvents(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hall *Hall) error {
	return r.db.WithContext(ctx).Create(hall).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).First(&hall, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).First(&hall, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *repository) List(ctx context.Context, query HallListQuery) (*PaginatedHalls, error) {
	var halls []Hall
	var total int64

	q := r.db.WithContext(ctx).Model(&Hall{})
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.Limit
	if err := q.Order("name asc").Offset(offset).Limit(query.Limit).Find(&halls).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedHalls{
		Halls:      halls,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Hall{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Hall{}, "id = ?", id).Error
}

func (r *repository) CountReferencingEvents(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("events").Where("hall_id = ?", id).Count(&count).Error
	return count, err
}

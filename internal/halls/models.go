package halls

import (
	"time"

	"github.com/google/uuid"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
)

// Hall is a physical auditorium. The halls table is the single source of
// truth for hall data; there are no fallback mapping constants anywhere.
type Hall struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string           `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Capacity  int              `json:"capacity" gorm:"not null;check:capacity > 0"`
	Type      seatmap.HallType `json:"type" gorm:"type:varchar(20);not null;check:type IN ('vip', 'standard')"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Hall) TableName() string {
	return "halls"
}

// Hall names are capped at 50 characters so standard-hall seat labels
// ({UPPER(name)}-{n}, numbers up to 6 digits) always fit the 64-char
// seat_claims.seat_label column.
type CreateHallRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=100000"`
	Type     string `json:"type" binding:"required,oneof=vip standard"`
}

type UpdateHallRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=100000"`
	Type     *string `json:"type" binding:"omitempty,oneof=vip standard"`
}

type HallListQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type  string `form:"type" binding:"omitempty,oneof=vip standard"`
}

type PaginatedHalls struct {
	Halls      []Hall `json:"halls"`
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_date"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(20);not null;default:'national'"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

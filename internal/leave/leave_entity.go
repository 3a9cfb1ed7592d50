package leave

import (
	"time"

	"github.com/google/uuid"
)

type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee"`
	LeaveType    string    `gorm:"type:varchar(20);not null"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	NumberOfDays int       `gorm:"type:int;not null;default:1"`
	Reason       string    `gorm:"type:text;not null"`

	Status          string     `gorm:"type:varchar(30);not null;default:'applied';index:idx_leaves_status"`
	RejectionReason *string    `gorm:"type:text"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Append-only decision ledger; insertion order is chronological.
	Approvals []Approval `gorm:"foreignKey:LeaveID"`

	Employee *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

// Approval is owned exclusively by its Leave; rows are never updated or
// deleted through the workflow.
type Approval struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_approvals_leave"`
	Role      string    `gorm:"type:varchar(20);not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Comments  string    `gorm:"type:text"`
	DecidedAt time.Time `gorm:"not null"`
}

func (Approval) TableName() string {
	return "leave_approvals"
}

// LeaveEmployee is a minimal join projection of the requesting user
type LeaveEmployee struct {
	ID        uuid.UUID  `gorm:"primaryKey"`
	Name      string     `gorm:"column:name"`
	Email     string     `gorm:"column:email"`
	Role      string     `gorm:"column:role"`
	ManagerID *uuid.UUID `gorm:"column:manager_id"`
}

func (LeaveEmployee) TableName() string {
	return "users"
}

package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleDirector = "director"
)

type User struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	Email       string     `gorm:"column:email;type:text;not null;uniqueIndex:uq_user_email"`
	Password    string     `gorm:"column:password;type:text;not null"`
	Role        string     `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	Department  string     `gorm:"column:department;type:varchar(100)"`
	Designation string     `gorm:"column:designation;type:varchar(100)"`
	Phone       string     `gorm:"column:phone;type:varchar(30)"`
	DOB         *time.Time `gorm:"column:dob;type:date"`
	Gender      string     `gorm:"column:gender;type:varchar(20)"`
	Address     string     `gorm:"column:address;type:text"`
	City        string     `gorm:"column:city;type:varchar(100)"`
	State       string     `gorm:"column:state;type:varchar(100)"`
	ZipCode     string     `gorm:"column:zip_code;type:varchar(20)"`

	// Role is fixed at creation; ManagerID defines the org chart for
	// manager-scoped queries.
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid;index:idx_users_manager"`

	// Remaining-day counters, one per leave type. Only the terminal
	// approval step writes these, floored at zero.
	CasualLeave    int `gorm:"column:casual_leave;type:int;not null;default:12"`
	SickLeave      int `gorm:"column:sick_leave;type:int;not null;default:10"`
	EarnedLeave    int `gorm:"column:earned_leave;type:int;not null;default:20"`
	MaternityLeave int `gorm:"column:maternity_leave;type:int;not null;default:180"`

	IsActive  bool `gorm:"column:is_active;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Manager *UserManager `gorm:"foreignKey:ManagerID;references:ID"`
}

// UserManager is a minimal join projection for the assigned manager
type UserManager struct {
	ID    uuid.UUID `gorm:"primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
}

func (UserManager) TableName() string {
	return "users"
}

package user

type CreateUserRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Role        string  `json:"role" binding:"required,oneof=employee manager hr director"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	ManagerID   *string `json:"managerId"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type LeaveBalanceResponse struct {
	CasualLeave    int `json:"casualLeave"`
	SickLeave      int `json:"sickLeave"`
	EarnedLeave    int `json:"earnedLeave"`
	MaternityLeave int `json:"maternityLeave"`
}

type UserResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Department   string               `json:"department,omitempty"`
	Designation  string               `json:"designation,omitempty"`
	Phone        string               `json:"phone,omitempty"`
	DOB          *string              `json:"dob,omitempty"`
	Gender       string               `json:"gender,omitempty"`
	Address      string               `json:"address,omitempty"`
	City         string               `json:"city,omitempty"`
	State        string               `json:"state,omitempty"`
	ZipCode      string               `json:"zipCode,omitempty"`
	ManagerID    *string              `json:"managerId,omitempty"`
	ManagerName  string               `json:"managerName,omitempty"`
	LeaveBalance LeaveBalanceResponse `json:"leaveBalance"`
	IsActive     bool                 `json:"isActive"`
}

// CreatedUserResponse carries the one-time temporary password back to the
// director who created the account.
type CreatedUserResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	TemporaryPassword string `json:"temporaryPassword"`
}

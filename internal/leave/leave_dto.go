package leave

type ApplyLeaveRequest struct {
	LeaveType    string `json:"leaveType" binding:"required,oneof=casual sick earned maternity other"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
	NumberOfDays int    `json:"numberOfDays" binding:"required,min=1"`
	Reason       string `json:"reason" binding:"required"`
}

type DecisionRequest struct {
	Comments string `json:"comments"`
}

type ApprovalResponse struct {
	Role       string `json:"role"`
	UserID     string `json:"userId"`
	Status     string `json:"status"`
	Comments   string `json:"comments,omitempty"`
	ApprovedAt string `json:"approvedAt"`
}

type LeaveResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employeeId"`
	EmployeeName    string             `json:"employeeName,omitempty"`
	EmployeeEmail   string             `json:"employeeEmail,omitempty"`
	LeaveType       string             `json:"leaveType"`
	StartDate       string             `json:"startDate"`
	EndDate         string             `json:"endDate"`
	NumberOfDays    int                `json:"numberOfDays"`
	Reason          string             `json:"reason"`
	Status          string             `json:"status"`
	Approvals       []ApprovalResponse `json:"approvals"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	RejectedBy      *string            `json:"rejectedBy,omitempty"`
	CreatedAt       string             `json:"createdAt"`
}

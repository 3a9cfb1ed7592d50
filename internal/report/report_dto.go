package report

type ReportEmployee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ReportLeaveItem struct {
	ID           string `json:"id"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	NumberOfDays int    `json:"numberOfDays"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

type EmployeeLeaveReport struct {
	Employee ReportEmployee    `json:"employee"`
	Leaves   []ReportLeaveItem `json:"leaves"`
}

type EmployeeSummaryResponse struct {
	Employee     ReportEmployee    `json:"employee"`
	TotalApplied int               `json:"totalApplied"`
	Approved     int               `json:"approved"`
	Rejected     int               `json:"rejected"`
	Pending      int               `json:"pending"`
	Leaves       []ReportLeaveItem `json:"leaves"`
}

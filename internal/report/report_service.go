package report

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"leavedesk/internal/leave"
	reporterrors "leavedesk/internal/report/errors"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ReportTypeOverall  = "overall"
	ReportTypeEmployee = "employee"
)

// csvHeader is fixed; downstream spreadsheets key on these column names.
var csvHeader = []string{"Employee", "Email", "Leave Type", "Start Date", "End Date", "Days", "Status", "Reason"}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	LeavesByEmployee(ctx context.Context) ([]EmployeeLeaveReport, error)
	EmployeeSummary(ctx context.Context, employeeID string) (EmployeeSummaryResponse, error)
	DownloadCSV(ctx context.Context, actorID, actorRole, reportType string) ([]byte, string, error)
}

type service struct {
	leaves leave.Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(leaves leave.Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{leaves: leaves, users: users, logger: l}
}

func (s *service) LeavesByEmployee(ctx context.Context) ([]EmployeeLeaveReport, error) {
	all, err := s.leaves.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to load leaves for report",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	grouped := make(map[string]*EmployeeLeaveReport)
	order := make([]string, 0)
	for i := range all {
		l := &all[i]
		key := l.EmployeeID.String()
		entry, ok := grouped[key]
		if !ok {
			entry = &EmployeeLeaveReport{Employee: toReportEmployee(l)}
			grouped[key] = entry
			order = append(order, key)
		}
		entry.Leaves = append(entry.Leaves, toReportLeaveItem(l))
	}

	out := make([]EmployeeLeaveReport, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Employee.Name < out[j].Employee.Name
	})
	return out, nil
}

func (s *service) EmployeeSummary(ctx context.Context, employeeID string) (EmployeeSummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeSummaryResponse{}, reporterrors.ErrInvalidEmployeeID
	}

	u, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeSummaryResponse{}, reporterrors.ErrEmployeeNotFound
		}
		return EmployeeSummaryResponse{}, err
	}

	leaves, err := s.leaves.FindByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeSummaryResponse{}, err
	}

	res := EmployeeSummaryResponse{
		Employee: ReportEmployee{
			ID:    u.ID.String(),
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		},
		Leaves: make([]ReportLeaveItem, 0, len(leaves)),
	}
	for i := range leaves {
		l := &leaves[i]
		res.TotalApplied++
		switch l.Status {
		case leave.StatusDirectorApproved:
			res.Approved++
		case leave.StatusRejected:
			res.Rejected++
		default:
			res.Pending++
		}
		res.Leaves = append(res.Leaves, toReportLeaveItem(l))
	}
	return res, nil
}

func (s *service) DownloadCSV(ctx context.Context, actorID, actorRole, reportType string) ([]byte, string, error) {
	var (
		rows     []leave.Leave
		filename string
		err      error
	)

	switch reportType {
	case ReportTypeOverall:
		if actorRole != user.RoleDirector {
			return nil, "", reporterrors.ErrNotAuthorized
		}
		rows, err = s.leaves.FindAll(ctx)
		filename = "leave-report-overall.csv"
	case ReportTypeEmployee:
		rows, err = s.leaves.FindByEmployee(ctx, actorID)
		filename = "leave-report-" + actorID + ".csv"
	default:
		return nil, "", reporterrors.ErrUnknownReportType
	}
	if err != nil {
		s.logger.Error("failed to load leaves for csv export",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("report_type", reportType),
			zap.Error(err),
		)
		return nil, "", err
	}

	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for i := range rows {
		l := &rows[i]
		name, email := "", ""
		if l.Employee != nil {
			name, email = l.Employee.Name, l.Employee.Email
		}
		writeCSVRow(&b, []string{
			name,
			email,
			l.LeaveType,
			l.StartDate.Format("2006-01-02"),
			l.EndDate.Format("2006-01-02"),
			strconv.Itoa(l.NumberOfDays),
			l.Status,
			l.Reason,
		})
	}

	s.logger.Info("csv report generated",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("report_type", reportType),
		zap.Int("rows", len(rows)),
	)
	return []byte(b.String()), filename, nil
}

// writeCSVRow quotes every field unconditionally. encoding/csv only quotes
// when it must, and the export format quotes all cells, so emit by hand.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

func toReportEmployee(l *leave.Leave) ReportEmployee {
	e := ReportEmployee{ID: l.EmployeeID.String()}
	if l.Employee != nil {
		e.Name = l.Employee.Name
		e.Email = l.Employee.Email
		e.Role = l.Employee.Role
	}
	return e
}

func toReportLeaveItem(l *leave.Leave) ReportLeaveItem {
	return ReportLeaveItem{
		ID:           l.ID.String(),
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		NumberOfDays: l.NumberOfDays,
		Reason:       l.Reason,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/ranking"
	"github.com/jakechorley/shift-cover/pkg/db"
)

var validate = validator.New()

// CoverRequest asks for replacements for an employee's shift
type CoverRequest struct {
	Date                string `validate:"required,datetime=2006-01-02"`
	ShiftType           string `validate:"required"`
	EmployeeOutID       string `validate:"required"`
	IncludeContactHours bool

	// Limit caps the number of candidates returned (0 means no cap)
	Limit int `validate:"min=0"`
}

// CoverResult is the ranked list of replacements for a request
type CoverResult struct {
	RequestID   string
	Date        string
	ShiftType   string
	EmployeeOut *model.Employee
	Candidates  []ranking.Candidate

	// Total is the number of candidates ranked before the limit was applied,
	// Eligible the number of those that can work
	Total    int
	Eligible int

	// ExcludedLeaveCodes are the codes that kept employees on leave out of the ranking
	ExcludedLeaveCodes []string
}

// FindCover ranks every eligible employee as a replacement for the outgoing employee
func FindCover(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, engine *Engine, req CoverRequest) (*CoverResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid cover request: %w", err)
	}

	requestID := uuid.New().String()
	logger = logger.With(zap.String("request_id", requestID))

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	month := date.Format(model.MonthLayout)

	logger.Debug("Finding cover",
		zap.String("date", req.Date),
		zap.String("shift_type", req.ShiftType),
		zap.String("employee_out", req.EmployeeOutID),
		zap.Bool("include_contact_hours", req.IncludeContactHours))

	schedule, err := store.GetSchedule(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", month, err)
	}

	employeeOut := schedule.Employee(req.EmployeeOutID)
	if employeeOut == nil {
		return nil, fmt.Errorf("employee %q not found in schedule for %s", req.EmployeeOutID, month)
	}

	logger.Debug("Loaded schedule", zap.String("month", month), zap.Int("employees", len(schedule.Employees)))

	hours := ranking.MonthlyHours(schedule, month, req.IncludeContactHours)
	candidates := ranking.RankWithHours(ranking.Request{
		Date:                date,
		ShiftType:           req.ShiftType,
		EmployeeOutID:       req.EmployeeOutID,
		IncludeContactHours: req.IncludeContactHours,
	}, schedule, engine.ScorerFor(date), hours)

	result := &CoverResult{
		RequestID:   requestID,
		Date:        req.Date,
		ShiftType:   req.ShiftType,
		EmployeeOut: employeeOut,
		Total:       len(candidates),

		ExcludedLeaveCodes: engine.Codes.LeaveCodes(),
	}
	for _, c := range candidates {
		if c.Details.CanWork {
			result.Eligible++
		}
	}

	if req.Limit > 0 && len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}
	result.Candidates = candidates

	logger.Info("Ranked cover candidates",
		zap.String("date", req.Date),
		zap.String("shift_type", req.ShiftType),
		zap.Int("total", result.Total),
		zap.Int("eligible", result.Eligible),
		zap.Float64("average_hours", hours.Average()))

	return result, nil
}

// ScoreRequest asks for one employee's score for a shift
type ScoreRequest struct {
	Date                string `validate:"required,datetime=2006-01-02"`
	ShiftType           string `validate:"required"`
	EmployeeID          string `validate:"required"`
	IncludeContactHours bool
}

// ScoreResult is one employee's score with the monthly hours context
type ScoreResult struct {
	Employee     *model.Employee
	Score        int
	Reasons      []string
	CanWork      bool
	MonthlyHours float64
	AverageHours float64
}

// ScoreEmployee scores a single employee taking the shift, without any eligibility filtering
func ScoreEmployee(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, engine *Engine, req ScoreRequest) (*ScoreResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid score request: %w", err)
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	month := date.Format(model.MonthLayout)

	schedule, err := store.GetSchedule(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", month, err)
	}

	emp := schedule.Employee(req.EmployeeID)
	if emp == nil {
		return nil, fmt.Errorf("employee %q not found in schedule for %s", req.EmployeeID, month)
	}

	hours := ranking.MonthlyHours(schedule, month, req.IncludeContactHours)
	res := engine.ScorerFor(date).Score(emp, date, req.ShiftType, hours)

	logger.Debug("Scored employee",
		zap.String("employee_id", emp.ID),
		zap.String("date", req.Date),
		zap.String("shift_type", req.ShiftType),
		zap.Int("score", res.Score),
		zap.Strings("reasons", res.Reasons))

	return &ScoreResult{
		Employee:     emp,
		Score:        res.Score,
		Reasons:      res.Reasons,
		CanWork:      !res.Illegal(),
		MonthlyHours: hours.HoursFor(emp.ID),
		AverageHours: hours.Average(),
	}, nil
}

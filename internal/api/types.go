package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Auth

type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignInResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// Candidates

type CandidateResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	PositionCode *string   `json:"position_code,omitempty"`
	Status       string    `json:"status"`
	Vote         *float64  `json:"vote,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CandidateDetailResponse struct {
	Candidate    CandidateResponse     `json:"candidate"`
	Appointments []AppointmentResponse `json:"appointments"`
}

type EditCandidateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type PositionResponse struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Booking calendar

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	CandidateID     uuid.UUID `json:"candidate_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	PositionCode    *string   `json:"position_code,omitempty"`
	QRevision       *string   `json:"q_revision,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookAppointmentRequest struct {
	CandidateID     string  `json:"candidate_id"`
	AppointmentTime string  `json:"appointment_time"` // RFC 3339
	PositionCode    *string `json:"position_code,omitempty"`
	QRevision       *string `json:"q_revision,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type SlotCellResponse struct {
	Hour         int                   `json:"hour"`
	Appointments []AppointmentResponse `json:"appointments"`
}

type DayColumnResponse struct {
	Date    string             `json:"date"` // yyyy-MM-dd
	Blocked bool               `json:"blocked"`
	Slots   []SlotCellResponse `json:"slots"`
}

type WeekGridResponse struct {
	WeekStart string              `json:"week_start"` // yyyy-MM-dd
	Days      []DayColumnResponse `json:"days"`
}

type BlockedRangeResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"start_date"`         // yyyy-MM-dd
	EndDate   *string   `json:"end_date,omitempty"` // nil means open-ended
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BlockRangeRequest struct {
	StartDate string  `json:"start_date"`         // yyyy-MM-dd
	EndDate   *string `json:"end_date,omitempty"` // omit for an open-ended block
	Reason    *string `json:"reason,omitempty"`
}

// Results and progress

type EvaluationResponse struct {
	ID              uuid.UUID `json:"id"`
	CandidateID     uuid.UUID `json:"candidate_id"`
	AnswerIndex     int       `json:"answer_index"`
	TechnicalScore  float64   `json:"technical_score"`
	ClarityScore    float64   `json:"clarity_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	RelevanceScore  float64   `json:"relevance_score"`
	TotalScore      float64   `json:"total_score"`
	Commentary      *string   `json:"commentary,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ExecutionLogResponse struct {
	ID            int64     `json:"id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	CurrentStatus string    `json:"current_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Converters

func toCandidateResponse(c candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PositionCode: c.PositionCode,
		Status:       c.Status,
		Vote:         c.Vote,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toAppointmentResponse(a schedule.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		CandidateID:     a.CandidateID,
		AppointmentTime: a.AppointmentTime,
		PositionCode:    a.PositionCode,
		QRevision:       a.QRevision,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

func toAppointmentResponses(appts []schedule.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func toWeekGridResponse(g schedule.WeekGrid) WeekGridResponse {
	resp := WeekGridResponse{WeekStart: g.Start.Format("2006-01-02")}
	for _, day := range g.Days {
		col := DayColumnResponse{
			Date:    day.Date.Format("2006-01-02"),
			Blocked: day.Blocked,
		}
		for _, cell := range day.Slots {
			col.Slots = append(col.Slots, SlotCellResponse{
				Hour:         cell.Hour,
				Appointments: toAppointmentResponses(cell.Appointments),
			})
		}
		resp.Days = append(resp.Days, col)
	}
	return resp
}

func toBlockedRangeResponse(b schedule.BlockedRange) BlockedRangeResponse {
	resp := BlockedRangeResponse{
		ID:        b.ID,
		StartDate: b.StartDate.Format("2006-01-02"),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
	if b.EndDate != nil {
		end := b.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func toEvaluationResponse(e evaluation.AIEvaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:              e.ID,
		CandidateID:     e.CandidateID,
		AnswerIndex:     e.AnswerIndex,
		TechnicalScore:  e.TechnicalScore,
		ClarityScore:    e.ClarityScore,
		ConfidenceScore: e.ConfidenceScore,
		RelevanceScore:  e.RelevanceScore,
		TotalScore:      e.TotalScore,
		Commentary:      e.Commentary,
		CreatedAt:       e.CreatedAt,
	}
}

func toExecutionLogResponse(l evaluation.ExecutionLog) ExecutionLogResponse {
	return ExecutionLogResponse{
		ID:            l.ID,
		CandidateID:   l.CandidateID,
		CurrentStatus: l.CurrentStatus,
		CreatedAt:     l.CreatedAt,
	}
}

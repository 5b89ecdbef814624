// AngelaMos | 2026
// dto.go

package deal

import (
	"time"
)

const dateLayout = "2006-01-02"

type CreateTransactionRequest struct {
	Name         string   `json:"name"          validate:"required,max=200"`
	Type         string   `json:"trans_type"    validate:"required"`
	ContactID    string   `json:"contact_id"    validate:"required,uuid"`
	PropertyID   *string  `json:"property_id"   validate:"omitempty,uuid"`
	ListingPrice *float64 `json:"listing_price" validate:"omitempty,gte=0"`
	SoldPrice    *float64 `json:"sold_price"    validate:"omitempty,gte=0"`
	ClosingDate  string   `json:"closing_date"  validate:"omitempty,datetime=2006-01-02"`
	Status       string   `json:"status"`
}

type UpdateTransactionRequest struct {
	Name         *string  `json:"name,omitempty"          validate:"omitempty,min=1,max=200"`
	Type         *string  `json:"trans_type,omitempty"`
	PropertyID   *string  `json:"property_id,omitempty"   validate:"omitempty,uuid"`
	ListingPrice *float64 `json:"listing_price,omitempty" validate:"omitempty,gte=0"`
	SoldPrice    *float64 `json:"sold_price,omitempty"    validate:"omitempty,gte=0"`
	ClosingDate  *string  `json:"closing_date,omitempty"  validate:"omitempty,datetime=2006-01-02"`
	Status       *string  `json:"status,omitempty"`
}

type AddTaskRequest struct {
	Name  string  `json:"name"  validate:"required,max=200"`
	Notes *string `json:"notes" validate:"omitempty,max=5000"`
}

type TransactionResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         Type            `json:"trans_type"`
	TypeLabel    string          `json:"trans_type_label"`
	ContactID    string          `json:"contact_id"`
	PropertyID   *string         `json:"property_id"`
	ListingPrice *float64        `json:"listing_price"`
	SoldPrice    *float64        `json:"sold_price"`
	ClosingDate  *string         `json:"closing_date"`
	Status       Status          `json:"status"`
	StatusLabel  string          `json:"status_label"`
	Stages       []StageResponse `json:"stages,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type StageResponse struct {
	ID          string         `json:"id"`
	StageNumber int            `json:"stage_number"`
	Tasks       []TaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID      string  `json:"id"`
	StageID string  `json:"stage_id"`
	Name    string  `json:"name"`
	Notes   *string `json:"notes"`
	IsDone  bool    `json:"is_done"`
}

func ToTransactionResponse(t *Transaction, stages []Stage) TransactionResponse {
	resp := TransactionResponse{
		ID:           t.ID,
		Name:         t.Name,
		Type:         t.Type,
		TypeLabel:    t.Type.Label(),
		ContactID:    t.ContactID,
		PropertyID:   t.PropertyID,
		ListingPrice: t.ListingPrice,
		SoldPrice:    t.SoldPrice,
		Status:       t.Status,
		StatusLabel:  t.Status.Label(),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.ClosingDate != nil {
		d := t.ClosingDate.Format(dateLayout)
		resp.ClosingDate = &d
	}
	for i := range stages {
		resp.Stages = append(resp.Stages, ToStageResponse(&stages[i]))
	}
	return resp
}

func ToStageResponse(s *Stage) StageResponse {
	tasks := make([]TaskResponse, 0, len(s.Tasks))
	for i := range s.Tasks {
		tasks = append(tasks, ToTaskResponse(&s.Tasks[i]))
	}
	return StageResponse{ID: s.ID, StageNumber: s.StageNumber, Tasks: tasks}
}

func ToTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:      t.ID,
		StageID: t.StageID,
		Name:    t.Name,
		Notes:   t.Notes,
		IsDone:  t.IsDone,
	}
}

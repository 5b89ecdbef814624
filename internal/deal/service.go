// AngelaMos | 2026
// service.go

package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

// ContactOwnership answers whether a contact is in a user's set.
type ContactOwnership interface {
	Owns(ctx context.Context, userID, contactID string) (bool, error)
}

type Service struct {
	repo     Repository
	contacts ContactOwnership
}

func NewService(repo Repository, contacts ContactOwnership) *Service {
	return &Service{repo: repo, contacts: contacts}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTransactionRequest,
) (*Transaction, error) {
	owns, err := s.contacts.Owns(ctx, userID, req.ContactID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, fmt.Errorf("create transaction: %w", core.ErrForbidden)
	}

	kind, ok := ParseType(req.Type)
	if !ok {
		return nil, fmt.Errorf("trans_type %q: %w", req.Type, core.ErrInvalidInput)
	}

	status := StatusOpened
	if req.Status != "" {
		if status, ok = ParseStatus(req.Status); !ok {
			return nil, fmt.Errorf("status %q: %w", req.Status, core.ErrInvalidInput)
		}
	}

	closing, err := parseDate(req.ClosingDate)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Type:         kind,
		ContactID:    req.ContactID,
		PropertyID:   req.PropertyID,
		ListingPrice: req.ListingPrice,
		SoldPrice:    req.SoldPrice,
		ClosingDate:  closing,
		Status:       status,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns the transaction with its ordered stages and tasks.
func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Transaction, []Stage, error) {
	t, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	stages, err := s.repo.ListStages(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return t, stages, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateTransactionRequest,
) (*Transaction, error) {
	t, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Type != nil {
		kind, ok := ParseType(*req.Type)
		if !ok {
			return nil, fmt.Errorf("trans_type %q: %w", *req.Type, core.ErrInvalidInput)
		}
		t.Type = kind
	}
	if req.Status != nil {
		status, ok := ParseStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("status %q: %w", *req.Status, core.ErrInvalidInput)
		}
		t.Status = status
	}
	if req.PropertyID != nil {
		t.PropertyID = req.PropertyID
	}
	if req.ListingPrice != nil {
		t.ListingPrice = req.ListingPrice
	}
	if req.SoldPrice != nil {
		t.SoldPrice = req.SoldPrice
	}
	if req.ClosingDate != nil {
		closing, err := parseDate(*req.ClosingDate)
		if err != nil {
			return nil, err
		}
		t.ClosingDate = closing
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) AddStage(ctx context.Context, userID, transactionID string) (*Stage, error) {
	if _, err := s.owned(ctx, userID, transactionID); err != nil {
		return nil, err
	}

	stage := &Stage{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		Tasks:         []Task{},
	}
	if err := s.repo.AddStage(ctx, stage); err != nil {
		return nil, err
	}

	return stage, nil
}

func (s *Service) AddTask(
	ctx context.Context,
	userID, stageID string,
	req AddTaskRequest,
) (*Task, error) {
	if _, err := s.ownedStage(ctx, userID, stageID); err != nil {
		return nil, err
	}

	task := &Task{
		ID:      uuid.NewString(),
		StageID: stageID,
		Name:    req.Name,
		Notes:   req.Notes,
	}
	if err := s.repo.AddTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ToggleTask flips a task's done flag.
func (s *Service) ToggleTask(ctx context.Context, userID, taskID string) (*Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedStage(ctx, userID, task.StageID); err != nil {
		return nil, err
	}

	task.IsDone = !task.IsDone
	if err := s.repo.SetTaskDone(ctx, task.ID, task.IsDone); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("transaction %s: %w", id, core.ErrForbidden)
	}
	return t, nil
}

func (s *Service) ownedStage(ctx context.Context, userID, stageID string) (*Stage, error) {
	stage, err := s.repo.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, userID, stage.TransactionID); err != nil {
		return nil, err
	}
	return stage, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", raw, core.ErrInvalidInput)
	}
	return &t, nil
}

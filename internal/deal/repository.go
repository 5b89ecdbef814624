// AngelaMos | 2026
// repository.go

package deal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	AddStage(ctx context.Context, s *Stage) error
	ListStages(ctx context.Context, transactionID string) ([]Stage, error)
	GetStage(ctx context.Context, id string) (*Stage, error)
	AddTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	SetTaskDone(ctx context.Context, id string, done bool) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const transactionColumns = `
	id, user_id, name, trans_type, contact_id, property_id,
	listing_price, sold_price, closing_date, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, name, trans_type, contact_id, property_id,
			listing_price, sold_price, closing_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		t.ID,
		t.UserID,
		t.Name,
		string(t.Type),
		t.ContactID,
		t.PropertyID,
		t.ListingPrice,
		t.SoldPrice,
		t.ClosingDate,
		string(t.Status),
	)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create transaction: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var t Transaction
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &t, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	var out []Transaction
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, t *Transaction) error {
	query := `
		UPDATE transactions
		SET name = $2, trans_type = $3, property_id = $4,
		    listing_price = $5, sold_price = $6, closing_date = $7,
		    status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &t.UpdatedAt, query,
		t.ID,
		t.Name,
		string(t.Type),
		t.PropertyID,
		t.ListingPrice,
		t.SoldPrice,
		t.ClosingDate,
		string(t.Status),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	return nil
}

// AddStage appends a stage numbered after the transaction's last one.
func (r *repository) AddStage(ctx context.Context, s *Stage) error {
	query := `
		INSERT INTO stages (id, transaction_id, stage_number)
		SELECT $1, $2, COALESCE(MAX(stage_number), 0) + 1
		FROM stages WHERE transaction_id = $2
		RETURNING stage_number`

	err := r.db.GetContext(ctx, &s.StageNumber, query, s.ID, s.TransactionID)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("add stage: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("add stage: %w", err)
	}

	return nil
}

// ListStages returns stages in order with their tasks attached.
func (r *repository) ListStages(
	ctx context.Context,
	transactionID string,
) ([]Stage, error) {
	var stages []Stage
	err := r.db.SelectContext(ctx, &stages, `
		SELECT id, transaction_id, stage_number
		FROM stages
		WHERE transaction_id = $1
		ORDER BY stage_number`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	if len(stages) == 0 {
		return stages, nil
	}

	ids := make([]string, len(stages))
	index := make(map[string]int, len(stages))
	for i := range stages {
		ids[i] = stages[i].ID
		index[stages[i].ID] = i
		stages[i].Tasks = []Task{}
	}

	query, args, err := sqlx.In(`
		SELECT id, stage_id, name, notes, is_done
		FROM tasks
		WHERE stage_id IN (?)
		ORDER BY name, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var tasks []Task
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	for _, t := range tasks {
		i := index[t.StageID]
		stages[i].Tasks = append(stages[i].Tasks, t)
	}

	return stages, nil
}

func (r *repository) GetStage(ctx context.Context, id string) (*Stage, error) {
	var s Stage
	err := r.db.GetContext(ctx, &s,
		`SELECT id, transaction_id, stage_number FROM stages WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get stage: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &s, nil
}

func (r *repository) AddTask(ctx context.Context, t *Task) error {
	query := `
		INSERT INTO tasks (id, stage_id, name, notes, is_done)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.StageID, t.Name, t.Notes, t.IsDone,
	); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("add task: %w", core.ErrNotFound)
		}
		return fmt.Errorf("add task: %w", err)
	}

	return nil
}

func (r *repository) GetTask(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.db.GetContext(ctx, &t,
		`SELECT id, stage_id, name, notes, is_done FROM tasks WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *repository) SetTaskDone(ctx context.Context, id string, done bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_done = $2 WHERE id = $1`, id, done)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update task: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM transactions`); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

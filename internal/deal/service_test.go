// AngelaMos | 2026
// service_test.go

package deal

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

type memRepo struct {
	txs    map[string]*Transaction
	stages map[string]*Stage
	tasks  map[string]*Task
}

func newMemRepo() *memRepo {
	return &memRepo{
		txs:    map[string]*Transaction{},
		stages: map[string]*Stage{},
		tasks:  map[string]*Task{},
	}
}

func (m *memRepo) Create(_ context.Context, t *Transaction) error {
	cp := *t
	m.txs[t.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Transaction, error) {
	t, ok := m.txs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]Transaction, error) {
	var out []Transaction
	for _, t := range m.txs {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, t *Transaction) error {
	cp := *t
	m.txs[t.ID] = &cp
	return nil
}

func (m *memRepo) AddStage(_ context.Context, s *Stage) error {
	n := 0
	for _, existing := range m.stages {
		if existing.TransactionID == s.TransactionID && existing.StageNumber > n {
			n = existing.StageNumber
		}
	}
	s.StageNumber = n + 1
	cp := *s
	m.stages[s.ID] = &cp
	return nil
}

func (m *memRepo) ListStages(_ context.Context, transactionID string) ([]Stage, error) {
	var out []Stage
	for _, s := range m.stages {
		if s.TransactionID != transactionID {
			continue
		}
		cp := *s
		cp.Tasks = []Task{}
		for _, t := range m.tasks {
			if t.StageID == s.ID {
				cp.Tasks = append(cp.Tasks, *t)
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StageNumber < out[j].StageNumber })
	return out, nil
}

func (m *memRepo) GetStage(_ context.Context, id string) (*Stage, error) {
	s, ok := m.stages[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) AddTask(_ context.Context, t *Task) error {
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memRepo) GetTask(_ context.Context, id string) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) SetTaskDone(_ context.Context, id string, done bool) error {
	m.tasks[id].IsDone = done
	return nil
}

func (m *memRepo) Count(context.Context) (int, error) { return len(m.txs), nil }

type owns map[string]string

func (o owns) Owns(_ context.Context, userID, contactID string) (bool, error) {
	return o[contactID] == userID, nil
}

const contactID = "7b0c4c8e-3a43-4c55-9d1e-3f1d8f0f4b11"

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, owns{contactID: "u1"}), repo
}

func TestCreateRequiresOwnedContact(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u2", CreateTransactionRequest{
		Name: "Elm St listing", Type: "seller", ContactID: contactID,
	})
	assert.ErrorIs(t, err, core.ErrForbidden)

	tx, err := svc.Create(ctx, "u1", CreateTransactionRequest{
		Name: "Elm St listing", Type: "Seller", ContactID: contactID,
		ClosingDate: "2026-11-30",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeSeller, tx.Type)
	assert.Equal(t, StatusOpened, tx.Status)
	require.NotNil(t, tx.ClosingDate)
	assert.Equal(t, "2026-11-30", tx.ClosingDate.Format(dateLayout))
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), "u1", CreateTransactionRequest{
		Name: "x", Type: "lease", ContactID: contactID,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestStagesAreNumberedInOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx, err := svc.Create(ctx, "u1", CreateTransactionRequest{
		Name: "Purchase", Type: "buyer", ContactID: contactID,
	})
	require.NoError(t, err)

	first, err := svc.AddStage(ctx, "u1", tx.ID)
	require.NoError(t, err)
	second, err := svc.AddStage(ctx, "u1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.StageNumber)
	assert.Equal(t, 2, second.StageNumber)

	_, err = svc.AddStage(ctx, "u2", tx.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	task, err := svc.AddTask(ctx, "u1", second.ID, AddTaskRequest{Name: "Inspection"})
	require.NoError(t, err)

	_, stages, err := svc.Get(ctx, "u1", tx.ID)
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Empty(t, stages[0].Tasks)
	require.Len(t, stages[1].Tasks, 1)
	assert.Equal(t, task.ID, stages[1].Tasks[0].ID)
}

func TestToggleTask(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx, err := svc.Create(ctx, "u1", CreateTransactionRequest{
		Name: "Purchase", Type: "buyer", ContactID: contactID,
	})
	require.NoError(t, err)
	stage, err := svc.AddStage(ctx, "u1", tx.ID)
	require.NoError(t, err)
	task, err := svc.AddTask(ctx, "u1", stage.ID, AddTaskRequest{Name: "Appraisal"})
	require.NoError(t, err)

	toggled, err := svc.ToggleTask(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsDone)

	toggled, err = svc.ToggleTask(ctx, "u1", task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsDone)

	_, err = svc.ToggleTask(ctx, "u2", task.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tx, err := svc.Create(ctx, "u1", CreateTransactionRequest{
		Name: "Purchase", Type: "buyer", ContactID: contactID,
	})
	require.NoError(t, err)

	closed := "closed"
	price := 450000.0
	updated, err := svc.Update(ctx, "u1", tx.ID, UpdateTransactionRequest{
		Status:    &closed,
		SoldPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, updated.Status)
	assert.Equal(t, "Purchase", updated.Name)
	require.NotNil(t, updated.SoldPrice)
	assert.InDelta(t, price, *updated.SoldPrice, 0.001)
}

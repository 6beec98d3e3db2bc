package testutil

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
)

// ErrForced is returned by mocks configured to fail.
var ErrForced = errors.New("forced repository error")

// MockTransactionRepository is an in-memory domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
	FailList     bool
	FailCreate   bool
	CreateCalls  int
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// AddTransaction seeds a transaction, assigning an ID when unset
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) *domain.Transaction {
	if tx.ID == 0 {
		tx.ID = m.NextID
		m.NextID++
	} else if tx.ID >= m.NextID {
		m.NextID = tx.ID + 1
	}
	m.Transactions[tx.ID] = tx
	return tx
}

// Create implements domain.TransactionRepository
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	m.CreateCalls++
	if m.FailCreate {
		return nil, ErrForced
	}
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	return m.AddTransaction(tx), nil
}

// GetByID implements domain.TransactionRepository
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	tx, ok := m.Transactions[id]
	if !ok || tx.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// ListByUser implements domain.TransactionRepository
func (m *MockTransactionRepository) ListByUser(userID uuid.UUID, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	if m.FailList {
		return nil, ErrForced
	}
	var txs []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID != userID {
			continue
		}
		if txType != nil && tx.Type != *txType {
			continue
		}
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs, nil
}

// Update implements domain.TransactionRepository
func (m *MockTransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[tx.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	tx.UpdatedAt = time.Now()
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// Delete implements domain.TransactionRepository
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id int32) error {
	tx, ok := m.Transactions[id]
	if !ok || tx.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// MockBudgetRepository is an in-memory domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[int32]*domain.Budget
	NextID   int32
	FailList bool
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[int32]*domain.Budget), NextID: 1}
}

// AddBudget seeds a budget, assigning an ID when unset
func (m *MockBudgetRepository) AddBudget(b *domain.Budget) *domain.Budget {
	if b.ID == 0 {
		b.ID = m.NextID
		m.NextID++
	} else if b.ID >= m.NextID {
		m.NextID = b.ID + 1
	}
	m.Budgets[b.ID] = b
	return b
}

// Create implements domain.BudgetRepository
func (m *MockBudgetRepository) Create(b *domain.Budget) (*domain.Budget, error) {
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return m.AddBudget(b), nil
}

// GetByID implements domain.BudgetRepository
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

// ListByUser implements domain.BudgetRepository
func (m *MockBudgetRepository) ListByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	if m.FailList {
		return nil, ErrForced
	}
	var budgets []*domain.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

// Update implements domain.BudgetRepository
func (m *MockBudgetRepository) Update(b *domain.Budget) (*domain.Budget, error) {
	if _, ok := m.Budgets[b.ID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	b.UpdatedAt = time.Now()
	m.Budgets[b.ID] = b
	return b, nil
}

// Delete implements domain.BudgetRepository
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockGoalRepository is an in-memory domain.SavingsGoalRepository
type MockGoalRepository struct {
	Goals    map[int32]*domain.SavingsGoal
	NextID   int32
	FailList bool
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[int32]*domain.SavingsGoal), NextID: 1}
}

// AddGoal seeds a goal, assigning an ID when unset
func (m *MockGoalRepository) AddGoal(g *domain.SavingsGoal) *domain.SavingsGoal {
	if g.ID == 0 {
		g.ID = m.NextID
		m.NextID++
	} else if g.ID >= m.NextID {
		m.NextID = g.ID + 1
	}
	m.Goals[g.ID] = g
	return g
}

// Create implements domain.SavingsGoalRepository
func (m *MockGoalRepository) Create(g *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	return m.AddGoal(g), nil
}

// GetByID implements domain.SavingsGoalRepository
func (m *MockGoalRepository) GetByID(userID uuid.UUID, id int32) (*domain.SavingsGoal, error) {
	g, ok := m.Goals[id]
	if !ok || g.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

// ListByUser implements domain.SavingsGoalRepository
func (m *MockGoalRepository) ListByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	if m.FailList {
		return nil, ErrForced
	}
	var goals []*domain.SavingsGoal
	for _, g := range m.Goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

// Update implements domain.SavingsGoalRepository
func (m *MockGoalRepository) Update(g *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	if _, ok := m.Goals[g.ID]; !ok {
		return nil, domain.ErrGoalNotFound
	}
	g.UpdatedAt = time.Now()
	m.Goals[g.ID] = g
	return g, nil
}

// Delete implements domain.SavingsGoalRepository
func (m *MockGoalRepository) Delete(userID uuid.UUID, id int32) error {
	g, ok := m.Goals[id]
	if !ok || g.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// MockUpcomingRepository is an in-memory domain.UpcomingExpenseRepository
type MockUpcomingRepository struct {
	Upcoming map[int32]*domain.UpcomingExpense
	NextID   int32
	FailList bool
}

// NewMockUpcomingRepository creates a new MockUpcomingRepository
func NewMockUpcomingRepository() *MockUpcomingRepository {
	return &MockUpcomingRepository{Upcoming: make(map[int32]*domain.UpcomingExpense), NextID: 1}
}

// AddUpcoming seeds an upcoming expense, assigning an ID when unset
func (m *MockUpcomingRepository) AddUpcoming(u *domain.UpcomingExpense) *domain.UpcomingExpense {
	if u.ID == 0 {
		u.ID = m.NextID
		m.NextID++
	} else if u.ID >= m.NextID {
		m.NextID = u.ID + 1
	}
	m.Upcoming[u.ID] = u
	return u
}

// Create implements domain.UpcomingExpenseRepository
func (m *MockUpcomingRepository) Create(u *domain.UpcomingExpense) (*domain.UpcomingExpense, error) {
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return m.AddUpcoming(u), nil
}

// GetByID implements domain.UpcomingExpenseRepository
func (m *MockUpcomingRepository) GetByID(userID uuid.UUID, id int32) (*domain.UpcomingExpense, error) {
	u, ok := m.Upcoming[id]
	if !ok || u.UserID != userID {
		return nil, domain.ErrUpcomingNotFound
	}
	return u, nil
}

// ListByUser implements domain.UpcomingExpenseRepository
func (m *MockUpcomingRepository) ListByUser(userID uuid.UUID) ([]*domain.UpcomingExpense, error) {
	if m.FailList {
		return nil, ErrForced
	}
	var upcoming []*domain.UpcomingExpense
	for _, u := range m.Upcoming {
		if u.UserID == userID {
			upcoming = append(upcoming, u)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].ID < upcoming[j].ID })
	return upcoming, nil
}

// Update implements domain.UpcomingExpenseRepository
func (m *MockUpcomingRepository) Update(u *domain.UpcomingExpense) (*domain.UpcomingExpense, error) {
	if _, ok := m.Upcoming[u.ID]; !ok {
		return nil, domain.ErrUpcomingNotFound
	}
	u.UpdatedAt = time.Now()
	m.Upcoming[u.ID] = u
	return u, nil
}

// Delete implements domain.UpcomingExpenseRepository
func (m *MockUpcomingRepository) Delete(userID uuid.UUID, id int32) error {
	u, ok := m.Upcoming[id]
	if !ok || u.UserID != userID {
		return domain.ErrUpcomingNotFound
	}
	delete(m.Upcoming, id)
	return nil
}

// MockRecurringRepository is an in-memory domain.RecurringPaymentRepository
type MockRecurringRepository struct {
	Payments    map[int32]*domain.RecurringPayment
	NextID      int32
	UpdateCalls int
}

// NewMockRecurringRepository creates a new MockRecurringRepository
func NewMockRecurringRepository() *MockRecurringRepository {
	return &MockRecurringRepository{Payments: make(map[int32]*domain.RecurringPayment), NextID: 1}
}

// AddPayment seeds a recurring payment, assigning an ID when unset
func (m *MockRecurringRepository) AddPayment(p *domain.RecurringPayment) *domain.RecurringPayment {
	if p.ID == 0 {
		p.ID = m.NextID
		m.NextID++
	} else if p.ID >= m.NextID {
		m.NextID = p.ID + 1
	}
	m.Payments[p.ID] = p
	return p
}

// Create implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) Create(p *domain.RecurringPayment) (*domain.RecurringPayment, error) {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	return m.AddPayment(p), nil
}

// GetByID implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) GetByID(userID uuid.UUID, id int32) (*domain.RecurringPayment, error) {
	p, ok := m.Payments[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrRecurringNotFound
	}
	return p, nil
}

// ListByUser implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) ListByUser(userID uuid.UUID) ([]*domain.RecurringPayment, error) {
	var payments []*domain.RecurringPayment
	for _, p := range m.Payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// ListAutoAddDue implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) ListAutoAddDue(asOf time.Time) ([]*domain.RecurringPayment, error) {
	var payments []*domain.RecurringPayment
	for _, p := range m.Payments {
		if p.AutoAdd && !p.NextDueDate.IsZero() && !p.NextDueDate.After(asOf) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// Update implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) Update(p *domain.RecurringPayment) (*domain.RecurringPayment, error) {
	if _, ok := m.Payments[p.ID]; !ok {
		return nil, domain.ErrRecurringNotFound
	}
	m.UpdateCalls++
	p.UpdatedAt = time.Now()
	m.Payments[p.ID] = p
	return p, nil
}

// Delete implements domain.RecurringPaymentRepository
func (m *MockRecurringRepository) Delete(userID uuid.UUID, id int32) error {
	p, ok := m.Payments[id]
	if !ok || p.UserID != userID {
		return domain.ErrRecurringNotFound
	}
	delete(m.Payments, id)
	return nil
}

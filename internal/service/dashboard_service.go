package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/rs/zerolog"
)

// recentTransactionCount is how many transactions the snapshot carries.
const recentTransactionCount = 10

// DashboardService assembles the full derived snapshot for a selected
// month. It is fail-soft: a failing repository contributes an empty
// collection and a warning, never an error, so the worst case is a
// dashboard of zeros.
type DashboardService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	goalRepo        domain.SavingsGoalRepository
	upcomingRepo    domain.UpcomingExpenseRepository
	logger          zerolog.Logger
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	transactionRepo domain.TransactionRepository,
	budgetRepo domain.BudgetRepository,
	goalRepo domain.SavingsGoalRepository,
	upcomingRepo domain.UpcomingExpenseRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		goalRepo:        goalRepo,
		upcomingRepo:    upcomingRepo,
		logger:          logger.With().Str("component", "dashboard_service").Logger(),
		now:             time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Summary returns the derived snapshot for the current month.
func (s *DashboardService) Summary(userID uuid.UUID) *domain.DashboardSummary {
	now := s.now()
	return s.SummaryForMonth(userID, now.Year(), now.Month())
}

// SummaryForMonth returns the derived snapshot for a selected month.
// Every aggregation runs over the same freshly-fetched record set; no
// derived result is cached between calls.
func (s *DashboardService) SummaryForMonth(userID uuid.UUID, year int, month time.Month) *domain.DashboardSummary {
	now := s.now()

	incomes := s.fetchTransactions(userID, domain.TransactionTypeIncome)
	expenses := s.fetchTransactions(userID, domain.TransactionTypeExpense)
	budgets := s.fetchBudgets(userID)
	goals := s.fetchGoals(userID)
	upcoming := s.fetchUpcoming(userID)

	monthPeriod := domain.MonthPeriod(year, month)
	monthExpenses := FilterByPeriod(expenses, monthPeriod)

	allTime := AllTimeTotals(incomes, expenses)
	breakdown := CategoryBreakdown(monthExpenses)
	budgetRows := BudgetProgressForMonth(budgets, expenses, year, month, now)

	goalRows := make([]domain.GoalProgress, 0, len(goals))
	for _, g := range goals {
		if g == nil {
			continue
		}
		goalRows = append(goalRows, GoalProgressFor(g))
	}

	return &domain.DashboardSummary{
		Year:  year,
		Month: month,

		AllTime:    allTime,
		MonthTotal: PeriodTotals(incomes, expenses, monthPeriod),
		Cumulative: CumulativeThrough(incomes, expenses, year, month),
		PrevSaved:  SavedBefore(incomes, expenses, year, month),

		Daily:     DailySeries(incomes, expenses, year, month),
		Breakdown: breakdown,
		Slices:    ChartSlices(breakdown),

		Budgets:           budgetRows,
		AvgBudgetProgress: AverageBudgetProgress(budgetRows),

		Goals:          goalRows,
		AvailableFunds: AvailableFunds(allTime.TotalSaved, goals),

		Forecast:      UpcomingForecast(upcoming, allTime.TotalSaved, now),
		TotalUpcoming: TotalUpcoming(upcoming),

		Recent: recentTransactions(incomes, expenses),
	}
}

func (s *DashboardService) fetchTransactions(userID uuid.UUID, txType domain.TransactionType) []*domain.Transaction {
	txs, err := s.transactionRepo.ListByUser(userID, &txType)
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(txType)).Msg("Transaction fetch failed, using empty set")
		return nil
	}
	return txs
}

func (s *DashboardService) fetchBudgets(userID uuid.UUID) []*domain.Budget {
	budgets, err := s.budgetRepo.ListByUser(userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Budget fetch failed, using empty set")
		return nil
	}
	return budgets
}

func (s *DashboardService) fetchGoals(userID uuid.UUID) []*domain.SavingsGoal {
	goals, err := s.goalRepo.ListByUser(userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Goal fetch failed, using empty set")
		return nil
	}
	return goals
}

func (s *DashboardService) fetchUpcoming(userID uuid.UUID) []*domain.UpcomingExpense {
	upcoming, err := s.upcomingRepo.ListByUser(userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Upcoming fetch failed, using empty set")
		return nil
	}
	return upcoming
}

// recentTransactions merges incomes and expenses and returns the latest
// entries by date, newest first.
func recentTransactions(incomes, expenses []*domain.Transaction) []*domain.Transaction {
	merged := make([]*domain.Transaction, 0, len(incomes)+len(expenses))
	for _, tx := range incomes {
		if tx != nil {
			merged = append(merged, tx)
		}
	}
	for _, tx := range expenses {
		if tx != nil {
			merged = append(merged, tx)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	if len(merged) > recentTransactionCount {
		merged = merged[:recentTransactionCount]
	}
	return merged
}

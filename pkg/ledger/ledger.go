// Package ledger holds the in-memory collections of expenses and incomes and
// the optional budget.
//
// Every mutation is persisted through a storage.Store before it returns.
// Readers receive copies, so a snapshot never changes after it was taken.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/pocketledger/backend/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type Ledger struct {
	mu    sync.RWMutex
	store storage.Store
	today func() types.Date

	expenses []models.Expense
	incomes  []models.Income
	budget   *models.Budget
}

type Option func(*Ledger)

// WithClock sets the function returning the date used for entries added
// without a date.
func WithClock(today func() types.Date) Option {
	return func(l *Ledger) {
		l.today = today
	}
}

// New returns an empty Ledger persisting to store. Call Load to read
// existing data.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		today:    types.Today,
		expenses: []models.Expense{},
		incomes:  []models.Income{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load replaces the in-memory state with the stored one.
func (l *Ledger) Load() error {
	expenses, err := load(l.store, storage.KindExpense, models.ExpenseFromRecord)
	if err != nil {
		return err
	}

	incomes, err := load(l.store, storage.KindIncome, models.IncomeFromRecord)
	if err != nil {
		return err
	}

	var budget *models.Budget
	record, err := l.store.LoadBudget()
	if err == nil {
		b, err := models.BudgetFromRecord(record)
		if err != nil {
			return fmt.Errorf("%w: budget: %w", ErrLoad, err)
		}
		budget = &b
	} else if !errors.Is(err, storage.ErrNoBudget) {
		return fmt.Errorf("%w: budget: %w", ErrLoad, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.expenses = expenses
	l.incomes = incomes
	l.budget = budget
	l.updateMetrics()

	log.Info().Int("expenses", len(expenses)).Int("incomes", len(incomes)).Bool("budget", budget != nil).Msg("Ledger loaded")
	return nil
}

func load[T any](store storage.Store, kind storage.Kind, parse func(models.Record) (T, error)) ([]T, error) {
	records, err := store.Load(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, kind, err)
	}

	result := make([]T, 0, len(records))
	for i, r := range records {
		v, err := parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %d: %w", ErrLoad, kind, i, err)
		}
		result = append(result, v)
	}

	return result, nil
}

type recorder interface {
	ToRecord() models.Record
}

func records[T recorder](entries []T) []models.Record {
	r := make([]models.Record, 0, len(entries))
	for _, e := range entries {
		r = append(r, e.ToRecord())
	}
	return r
}

// Expenses returns a snapshot of all expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.expenses)
}

// Incomes returns a snapshot of all incomes in insertion order.
func (l *Ledger) Incomes() []models.Income {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.incomes)
}

// Budget returns a copy of the budget, nil if none is set.
func (l *Ledger) Budget() *models.Budget {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return copyBudget(l.budget)
}

func copyBudget(b *models.Budget) *models.Budget {
	if b == nil {
		return nil
	}

	c := models.NewBudget(b.Amount)
	for name, amount := range b.Categories {
		c.Categories[name] = amount
	}
	return &c
}

// AddExpense validates the raw fields, appends the expense and persists
// the expenses. An empty date means today. It returns the index of the new
// expense.
func (l *Ledger) AddExpense(date, amount, category, description string) (int, models.Expense, error) {
	e, err := models.ParseExpense(date, amount, category, description, l.today)
	if err != nil {
		return 0, models.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	expenses := append(slices.Clone(l.expenses), e)
	if err := l.store.Save(storage.KindExpense, records(expenses)); err != nil {
		return 0, models.Expense{}, err
	}

	l.expenses = expenses
	l.updateMetrics()
	return len(expenses) - 1, e, nil
}

// AddIncome validates the raw fields, appends the income and persists the
// incomes. An empty date means today.
func (l *Ledger) AddIncome(date, amount, category, description string) (int, models.Income, error) {
	i, err := models.ParseIncome(date, amount, category, description, l.today)
	if err != nil {
		return 0, models.Income{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	incomes := append(slices.Clone(l.incomes), i)
	if err := l.store.Save(storage.KindIncome, records(incomes)); err != nil {
		return 0, models.Income{}, err
	}

	l.incomes = incomes
	l.updateMetrics()
	return len(incomes) - 1, i, nil
}

// Append adds already validated expenses and incomes in the given order.
//
// Expenses are persisted before incomes. If persisting the incomes fails,
// the expenses stay added.
func (l *Ledger) Append(expenses []models.Expense, incomes []models.Income) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(expenses) > 0 {
		all := append(slices.Clone(l.expenses), expenses...)
		if err := l.store.Save(storage.KindExpense, records(all)); err != nil {
			return err
		}
		l.expenses = all
	}

	if len(incomes) > 0 {
		all := append(slices.Clone(l.incomes), incomes...)
		if err := l.store.Save(storage.KindIncome, records(all)); err != nil {
			l.updateMetrics()
			return err
		}
		l.incomes = all
	}

	l.updateMetrics()
	return nil
}

// DeleteExpense removes the expense at the positional index. All following
// expenses move down by one.
func (l *Ledger) DeleteExpense(index int) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expenses, removed, err := remove(l.expenses, index)
	if err != nil {
		return models.Expense{}, err
	}

	if err := l.store.Save(storage.KindExpense, records(expenses)); err != nil {
		return models.Expense{}, err
	}

	l.expenses = expenses
	l.updateMetrics()
	return removed, nil
}

// DeleteIncome removes the income at the positional index. All following
// incomes move down by one.
func (l *Ledger) DeleteIncome(index int) (models.Income, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	incomes, removed, err := remove(l.incomes, index)
	if err != nil {
		return models.Income{}, err
	}

	if err := l.store.Save(storage.KindIncome, records(incomes)); err != nil {
		return models.Income{}, err
	}

	l.incomes = incomes
	l.updateMetrics()
	return removed, nil
}

// remove returns a copy of s without the element at index.
func remove[T any](s []T, index int) ([]T, T, error) {
	var zero T
	if err := validation.CheckIndex(index, len(s)); err != nil {
		return nil, zero, err
	}

	removed := s[index]
	return slices.Delete(slices.Clone(s), index, index+1), removed, nil
}

// SetBudget replaces the budget, including all category ceilings.
func (l *Ledger) SetBudget(b models.Budget) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.saveBudget(copyBudget(&b))
}

// SetCategoryBudget sets the ceiling of one category on the existing budget.
func (l *Ledger) SetCategoryBudget(category string, amount decimal.Decimal) (models.Budget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.budget == nil {
		return models.Budget{}, storage.ErrNoBudget
	}

	b := copyBudget(l.budget)
	if err := b.SetCategoryBudget(category, amount); err != nil {
		return models.Budget{}, err
	}

	if err := l.saveBudget(b); err != nil {
		return models.Budget{}, err
	}

	return *copyBudget(b), nil
}

func (l *Ledger) saveBudget(b *models.Budget) error {
	if err := l.store.SaveBudget(b.ToRecord()); err != nil {
		return err
	}

	l.budget = b
	l.updateMetrics()
	return nil
}

// RemoveBudget deletes the budget. It returns storage.ErrNoBudget if no
// budget is set.
func (l *Ledger) RemoveBudget() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.budget == nil {
		return storage.ErrNoBudget
	}

	if err := l.store.DeleteBudget(); err != nil {
		return err
	}

	l.budget = nil
	l.updateMetrics()
	return nil
}

// AnalyzeExpenses analyzes a snapshot of the expenses against the budget.
func (l *Ledger) AnalyzeExpenses() (analysis.ExpenseAnalysis, error) {
	l.mu.RLock()
	expenses, budget := slices.Clone(l.expenses), copyBudget(l.budget)
	l.mu.RUnlock()

	return analysis.AnalyzeExpenses(expenses, budget)
}

// AnalyzeFinances analyzes a snapshot of incomes and expenses against the
// budget.
func (l *Ledger) AnalyzeFinances() (analysis.FinanceAnalysis, error) {
	l.mu.RLock()
	incomes, expenses, budget := slices.Clone(l.incomes), slices.Clone(l.expenses), copyBudget(l.budget)
	l.mu.RUnlock()

	return analysis.AnalyzeFinances(incomes, expenses, budget)
}

// Ping checks the store.
func (l *Ledger) Ping() error {
	return l.store.Ping()
}

// updateMetrics must be called with the lock held.
func (l *Ledger) updateMetrics() {
	entryCount.WithLabelValues(string(storage.KindExpense)).Set(float64(len(l.expenses)))
	entryCount.WithLabelValues(string(storage.KindIncome)).Set(float64(len(l.incomes)))

	if l.budget == nil {
		budgetAmount.Set(0)
		return
	}
	budgetAmount.Set(l.budget.Amount.InexactFloat64())
}

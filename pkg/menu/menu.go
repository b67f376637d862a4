// Package menu implements the interactive console for the ledger.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/analysis"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/report"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/pocketledger/backend/pkg/validation"
	"github.com/rs/zerolog/log"
)

// errClosed is returned by prompts when the input ends.
var errClosed = errors.New("input closed")

// errCancelled is returned by prompts that accept "cancel".
var errCancelled = errors.New("cancelled")

type action struct {
	label string
	run   func(m *Menu) error
}

// actions in menu order. The choice for an action is its position plus one.
var actions = []action{
	{"Add Expense", (*Menu).addExpense},
	{"View Expenses", (*Menu).viewExpenses},
	{"Delete Expense", (*Menu).deleteExpense},
	{"Analyze Expenses", (*Menu).analyzeExpenses},
	{"Add Income", (*Menu).addIncome},
	{"View Incomes", (*Menu).viewIncomes},
	{"Delete Income", (*Menu).deleteIncome},
	{"Set Budget", (*Menu).setBudget},
	{"View Budget", (*Menu).viewBudget},
	{"Remove Budget", (*Menu).removeBudget},
	{"Analyze Finances", (*Menu).analyzeFinances},
}

// Menu reads choices from in and writes to out until the user exits or
// the input ends.
type Menu struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
}

func New(l *ledger.Ledger, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the main menu until the user exits. End of input is treated
// like exiting.
func (m *Menu) Run() error {
	exit := fmt.Sprint(len(actions) + 1)

	choices := make([]string, 0, len(actions)+1)
	for i := range actions {
		choices = append(choices, fmt.Sprint(i+1))
	}
	choices = append(choices, exit)

	for {
		m.println("")
		for i, a := range actions {
			m.printf("%d. %s\n", i+1, a.label)
		}
		m.printf("%s. Exit\n", exit)

		choice, err := m.read(fmt.Sprintf("\nChoose an option (1-%s): ", exit))
		if errors.Is(err, errClosed) {
			m.println("")
			return nil
		} else if err != nil {
			return err
		}

		if err := validation.RequireMenuChoice(choice, choices); err != nil {
			m.println(err.Error())
			continue
		}

		if choice == exit {
			m.println("Thank you for using the budget tracker!")
			return nil
		}

		index, _ := strconv.Atoi(choice)
		err = actions[index-1].run(m)
		if errors.Is(err, errClosed) {
			m.println("")
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

// read shows the prompt and returns the next line without surrounding
// whitespace.
func (m *Menu) read(prompt string) (string, error) {
	m.printf("%s", prompt)

	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errClosed
	}

	return strings.TrimSpace(m.in.Text()), nil
}

// ask repeats the prompt until check accepts the input.
func (m *Menu) ask(prompt string, check func(string) error) (string, error) {
	for {
		s, err := m.read(prompt)
		if err != nil {
			return "", err
		}

		if err := check(s); err != nil {
			m.printf("Error: %s\n", err)
			continue
		}
		return s, nil
	}
}

// fail reports errors the user cannot fix by entering something else.
func (m *Menu) fail(action string, err error) {
	log.Error().Err(err).Str("action", action).Msg("Menu")
	m.printf("Error: %s\n", err)
}

// entryInput holds the raw fields of a new expense or income.
type entryInput struct {
	date, amount, category, description string
}

func (m *Menu) askEntry(title, categoryExamples string) (entryInput, error) {
	var (
		in  entryInput
		err error
	)

	m.printf("\n--- %s ---\n", title)

	in.date, err = m.ask("Enter date (YYYY-MM-DD) or leave empty for today: ", func(s string) error {
		_, err := validation.ParseDate(s, types.Today)
		return err
	})
	if err != nil {
		return in, err
	}

	in.amount, err = m.ask("Enter amount: $", func(s string) error {
		_, err := validation.ValidateAmount(s)
		return err
	})
	if err != nil {
		return in, err
	}

	in.category, err = m.ask(fmt.Sprintf("Enter category (e.g., %s): ", categoryExamples), func(s string) error {
		_, err := validation.ValidateCategory(s)
		return err
	})
	if err != nil {
		return in, err
	}

	in.description, err = m.ask("Enter description: ", func(s string) error {
		_, err := validation.ValidateDescription(s)
		return err
	})
	return in, err
}

func (m *Menu) addExpense() error {
	in, err := m.askEntry("Add New Expense", "food, transport, bills")
	if err != nil {
		return err
	}

	if _, _, err := m.ledger.AddExpense(in.date, in.amount, in.category, in.description); err != nil {
		m.fail("add expense", err)
		return nil
	}

	m.println("Expense added successfully!")
	return nil
}

func (m *Menu) addIncome() error {
	in, err := m.askEntry("Add New Income", "salary, freelance, investment")
	if err != nil {
		return err
	}

	_, income, err := m.ledger.AddIncome(in.date, in.amount, in.category, in.description)
	if err != nil {
		m.fail("add income", err)
		return nil
	}

	m.printf("Income of %s added successfully!\n", report.Money(income.Amount))
	return nil
}

func (m *Menu) viewExpenses() error {
	return report.Expenses(m.out, m.ledger.Expenses())
}

func (m *Menu) viewIncomes() error {
	return report.Incomes(m.out, m.ledger.Incomes())
}

// deleteEntry shows the entries and deletes the one at the chosen index.
// An empty index cancels.
func (m *Menu) deleteEntry(noun string, count int, show func() error, remove func(int) error) error {
	if count == 0 {
		m.printf("No %ss to delete.\n", noun)
		return nil
	}

	if err := show(); err != nil {
		return err
	}

	s, err := m.ask(fmt.Sprintf("\nEnter the index of the %s to delete (or leave empty to cancel): ", noun), func(s string) error {
		if s == "" {
			return nil
		}
		_, err := validation.ValidateIndex(s, count)
		return err
	})
	if err != nil {
		return err
	}

	if s == "" {
		m.printf("Deletion of %s cancelled.\n", noun)
		return nil
	}

	index, _ := validation.ValidateIndex(s, count)
	if err := remove(index); err != nil {
		m.fail("delete "+noun, err)
		return nil
	}

	m.printf("%s%s deleted successfully!\n", strings.ToUpper(noun[:1]), noun[1:])
	return nil
}

func (m *Menu) deleteExpense() error {
	expenses := m.ledger.Expenses()
	return m.deleteEntry("expense", len(expenses),
		func() error { return report.Expenses(m.out, expenses) },
		func(i int) error {
			_, err := m.ledger.DeleteExpense(i)
			return err
		})
}

func (m *Menu) deleteIncome() error {
	incomes := m.ledger.Incomes()
	return m.deleteEntry("income", len(incomes),
		func() error { return report.Incomes(m.out, incomes) },
		func(i int) error {
			_, err := m.ledger.DeleteIncome(i)
			return err
		})
}

// askCancellable is ask, but the input "cancel" returns errCancelled.
func (m *Menu) askCancellable(prompt string, check func(string) error) (string, error) {
	s, err := m.ask(prompt, func(s string) error {
		if strings.EqualFold(s, "cancel") {
			return nil
		}
		return check(s)
	})
	if err == nil && strings.EqualFold(s, "cancel") {
		return "", errCancelled
	}
	return s, err
}

func (m *Menu) setBudget() error {
	m.println("\n--- Set Monthly Budget ---")

	budget, err := m.askBudget()
	if errors.Is(err, errCancelled) {
		m.println("Budget setting cancelled.")
		return nil
	} else if err != nil {
		return err
	}

	if err := m.ledger.SetBudget(budget); err != nil {
		m.fail("set budget", err)
		return nil
	}

	m.printf("Monthly budget of %s set successfully!\n", report.Money(budget.Amount))
	return nil
}

// askBudget asks for the budget amount and any number of category
// ceilings. An empty category name ends the list.
func (m *Menu) askBudget() (models.Budget, error) {
	raw, err := m.askCancellable("Enter monthly budget amount (or 'cancel' to cancel): $", func(s string) error {
		_, err := validation.ValidateBudgetAmount(s)
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	amount, _ := validation.ValidateBudgetAmount(raw)
	budget := models.NewBudget(amount)

	for {
		category, err := m.askCancellable("Enter a category to set a budget for (leave empty to finish): ", func(s string) error {
			if s == "" {
				return nil
			}
			_, err := validation.ValidateCategory(s)
			return err
		})
		if err != nil {
			return models.Budget{}, err
		}

		if category == "" {
			return budget, nil
		}

		raw, err := m.askCancellable(fmt.Sprintf("Enter budget for %s: $", category), func(s string) error {
			_, err := validation.ValidateAmount(s)
			return err
		})
		if err != nil {
			return models.Budget{}, err
		}

		ceiling, _ := validation.ValidateAmount(raw)
		if err := budget.SetCategoryBudget(category, ceiling); err != nil {
			m.printf("Error: %s\n", err)
		}
	}
}

func (m *Menu) viewBudget() error {
	return report.Budget(m.out, m.ledger.Budget())
}

func (m *Menu) removeBudget() error {
	err := m.ledger.RemoveBudget()
	if errors.Is(err, storage.ErrNoBudget) {
		m.println("No budget has been set.")
		return nil
	} else if err != nil {
		m.fail("remove budget", err)
		return nil
	}

	m.println("Budget removed successfully!")
	return nil
}

func (m *Menu) analyzeExpenses() error {
	a, err := m.ledger.AnalyzeExpenses()
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		return report.NothingToAnalyze(m.out, report.SubjectExpenses)
	} else if err != nil {
		return err
	}

	return report.ExpenseAnalysis(m.out, a)
}

func (m *Menu) analyzeFinances() error {
	a, err := m.ledger.AnalyzeFinances()
	if errors.Is(err, analysis.ErrNothingToAnalyze) {
		return report.NothingToAnalyze(m.out, report.SubjectFinancial)
	} else if err != nil {
		return err
	}

	return report.Finances(m.out, a)
}

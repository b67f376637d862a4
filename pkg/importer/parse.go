// Package importer reads expenses and incomes from CSV files.
//
// The file has a header line and the columns
//
//	Date,Category,Description,Outflow,Inflow
//
// Exactly one of Outflow and Inflow must be set. Outflows become expenses,
// inflows become incomes.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/pkg/models"
)

// Column indices
const (
	Date = iota
	Category
	Description
	Outflow
	Inflow
	columns
)

// Parse reads all rows of the CSV. Every field is validated like manual
// input, validation errors are returned wrapped with the line.
func Parse(f io.Reader) ([]Row, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	rows := make([]Row, 0)

	// Skip the header
	_, err := reader.Read()
	if err == io.EOF {
		return rows, nil
	} else if err != nil {
		return []Row{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return []Row{}, fmt.Errorf("%w: %w", ErrFormat, err)
		}

		if record[Date] == "" {
			return csvReadError(reader, ErrNoDate)
		}

		line, _ := reader.FieldPos(0)
		row := Row{Line: line}

		var entry models.Entry
		switch {
		case record[Outflow] != "" && record[Inflow] != "":
			return csvReadError(reader, ErrBothAmounts)
		case record[Outflow] == "" && record[Inflow] == "":
			return csvReadError(reader, ErrNoAmount)
		case record[Outflow] != "":
			row.Kind = KindExpense
			var e models.Expense
			e, err = models.ParseExpense(record[Date], record[Outflow], record[Category], record[Description], types.Today)
			entry = e.Entry
		default:
			row.Kind = KindIncome
			var i models.Income
			i, err = models.ParseIncome(record[Date], record[Inflow], record[Category], record[Description], types.Today)
			entry = i.Entry
		}

		if err != nil {
			return csvReadError(reader, err)
		}

		row.Entry = entry
		row.Hash = Hash(entry)
		rows = append(rows, row)
	}

	return rows, nil
}

// csvReadError returns the error with the line of the input it occurred in
// in the message.
func csvReadError(r *csv.Reader, err error) ([]Row, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return []Row{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}

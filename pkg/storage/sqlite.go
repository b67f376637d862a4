package storage

import (
	"errors"
	"fmt"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// entry is the row of an expense or income.
//
// Amounts are stored as text to keep their full decimal precision.
type entry struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	Kind        Kind      `gorm:"index:idx_entries_kind_position,priority:1;not null"`
	Position    int       `gorm:"index:idx_entries_kind_position,priority:2;not null"`
	Date        string    `gorm:"not null"`
	Amount      string    `gorm:"not null"`
	Category    string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (entry) TableName() string {
	return "entries"
}

// BeforeCreate is set to generate a UUID for the row.
func (e *entry) BeforeCreate(_ *gorm.DB) error {
	e.ID = uuid.New()
	return nil
}

// budget is the single budget row. Its ID is always budgetID.
type budget struct {
	ID        uint   `gorm:"primaryKey"`
	Amount    string `gorm:"not null"`
	UpdatedAt time.Time
}

const budgetID = 1

func (budget) TableName() string {
	return "budgets"
}

type budgetCategory struct {
	Name   string `gorm:"primaryKey"`
	Amount string `gorm:"not null"`
}

func (budgetCategory) TableName() string {
	return "budget_categories"
}

// SQLStore keeps records in an SQLite database.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore opens the SQLite database at dsn and migrates the schema.
func NewSQLStore(dsn string) (*SQLStore, error) {
	config := &gorm.Config{
		Logger: newQueryLogger(log.Logger),
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// A single connection prevents SQLITE_BUSY errors and keeps in-memory
	// databases alive for the lifetime of the store
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	err = db.AutoMigrate(&entry{}, &budget{}, &budgetCategory{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	err = db.Callback().Create().After("*").Register("pocketledger:after_create_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Query().After("*").Register("pocketledger:after_query_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("pocketledger:after_update_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Delete().After("*").Register("pocketledger:after_delete_general", generalCallback)
	if err != nil {
		return nil, err
	}

	return &SQLStore{db: db}, nil
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and ErrGeneral is returned.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = general(db.Error)
}

// general replaces driver errors with ErrGeneral after logging them.
func general(err error) error {
	var driverErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in database/sql
	if err.Error() == "sql: database is closed" || errors.As(err, &driverErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// transaction runs fc in a transaction. Errors from beginning or committing
// the transaction do not pass the callbacks and are mapped here.
func (s *SQLStore) transaction(fc func(tx *gorm.DB) error) error {
	err := s.db.Transaction(fc)
	if err != nil {
		return general(err)
	}
	return nil
}

func (s *SQLStore) Save(kind Kind, records []models.Record) error {
	if err := kind.validate(); err != nil {
		return err
	}

	rows := make([]entry, 0, len(records))
	for i, r := range records {
		e, err := models.EntryFromRecord(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		rows = append(rows, entry{
			Kind:        kind,
			Position:    i,
			Date:        e.Date.String(),
			Amount:      e.Amount.String(),
			Category:    e.Category,
			Description: e.Description,
		})
	}

	return s.transaction(func(tx *gorm.DB) error {
		err := tx.Where("kind = ?", kind).Delete(&entry{}).Error
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		return tx.Create(&rows).Error
	})
}

func (s *SQLStore) Load(kind Kind) ([]models.Record, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	var rows []entry
	err := s.db.Where("kind = ?", kind).Order("position").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.Record{
			models.KeyDate:        row.Date,
			models.KeyAmount:      row.Amount,
			models.KeyCategory:    row.Category,
			models.KeyDescription: row.Description,
		})
	}

	return records, nil
}

func (s *SQLStore) SaveBudget(record models.Record) error {
	b, err := models.BudgetFromRecord(record)
	if err != nil {
		return err
	}

	categories := make([]budgetCategory, 0, len(b.Categories))
	for _, name := range b.CategoryNames() {
		categories = append(categories, budgetCategory{Name: name, Amount: b.Categories[name].String()})
	}

	return s.transaction(func(tx *gorm.DB) error {
		err := tx.Save(&budget{ID: budgetID, Amount: b.Amount.String()}).Error
		if err != nil {
			return err
		}

		err = tx.Where("1 = 1").Delete(&budgetCategory{}).Error
		if err != nil {
			return err
		}

		if len(categories) == 0 {
			return nil
		}

		return tx.Create(&categories).Error
	})
}

func (s *SQLStore) LoadBudget() (models.Record, error) {
	var row budget
	err := s.db.First(&row, budgetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoBudget
	} else if err != nil {
		return nil, err
	}

	var rows []budgetCategory
	err = s.db.Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make(map[string]any, len(rows))
	for _, c := range rows {
		categories[c.Name] = c.Amount
	}

	return models.Record{
		models.KeyAmount:     row.Amount,
		models.KeyCategories: categories,
	}, nil
}

func (s *SQLStore) DeleteBudget() error {
	return s.transaction(func(tx *gorm.DB) error {
		err := tx.Where("1 = 1").Delete(&budgetCategory{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&budget{}, budgetID).Error
	})
}

func (s *SQLStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Ping(); err != nil {
		return general(err)
	}

	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

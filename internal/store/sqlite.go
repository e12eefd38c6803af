package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nibzard/taskflow/internal/task"
)

// sqliteHeader is the magic string at the start of every SQLite database file.
const sqliteHeader = "SQLite format 3\x00"

// taskRow is the database representation of a task. Position keeps the
// collection order, starting at 1.
type taskRow struct {
	Position    int    `gorm:"primaryKey;autoIncrement:false"`
	TaskID      int    `gorm:"column:task_id;uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	Status      string `gorm:"not null"`
	Priority    string `gorm:"not null"`
}

func (taskRow) TableName() string {
	return "tasks"
}

// SQLiteStore implements task.Store using a SQLite database file.
// The database is opened and closed on every call.
type SQLiteStore struct{}

// NewSQLiteStore returns a SQLiteStore.
func NewSQLiteStore(Options) *SQLiteStore {
	return &SQLiteStore{}
}

func openDB(location string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(location), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// checkHeader reports whether location holds content to open. Empty and
// whitespace-only files are treated as an empty collection.
func checkHeader(location string) (bool, error) {
	f, err := os.Open(location)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read task database: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read task database: %w", err)
	}
	if n == len(sqliteHeader) && string(header) == sqliteHeader {
		return true, nil
	}

	rest, err := io.ReadAll(f)
	if err != nil {
		return false, fmt.Errorf("read task database: %w", err)
	}
	if len(bytes.TrimSpace(header[:n])) == 0 && len(bytes.TrimSpace(rest)) == 0 {
		return false, nil
	}
	return false, &task.MalformedStoreError{Location: location, Err: errors.New("not a SQLite database")}
}

// hasTaskTable reports whether the tasks table exists. Unlike the migrator
// check it returns read errors, so a corrupt file is not mistaken for an
// empty one.
func hasTaskTable(db *gorm.DB) (bool, error) {
	var n int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", taskRow{}.TableName()).Scan(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Load reads all tasks from the database at location in position order.
func (s *SQLiteStore) Load(location string) ([]task.Task, error) {
	ok, err := checkHeader(location)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []task.Task{}, nil
	}

	db, err := openDB(location)
	if err != nil {
		return nil, err
	}
	defer closeDB(db)

	found, err := hasTaskTable(db)
	if err != nil {
		return nil, &task.MalformedStoreError{Location: location, Err: err}
	}
	if !found {
		return []task.Task{}, nil
	}

	var rows []taskRow
	if err := db.Order("position").Find(&rows).Error; err != nil {
		return nil, &task.MalformedStoreError{Location: location, Err: err}
	}

	tasks := make([]task.Task, 0, len(rows))
	for i, row := range rows {
		t, err := rowToTask(row)
		if err != nil {
			var ve *task.ValidationError
			if errors.As(err, &ve) {
				return nil, &task.MalformedStoreError{
					Location: location,
					Path:     fmt.Sprintf("[%d].%s", i, ve.Field),
					Err:      err,
				}
			}
			return nil, &task.MalformedStoreError{Location: location, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := checkUniqueIDs(location, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the contents of the database at location with tasks.
func (s *SQLiteStore) Save(location string, tasks []task.Task) error {
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return fmt.Errorf("create task database dir: %w", err)
	}

	// A blank file loads as empty; replace it with a fresh database.
	ok, err := checkHeader(location)
	if err != nil && !errors.Is(err, task.ErrMalformedStore) {
		return err
	}
	if !ok && err == nil {
		if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reset task database: %w", err)
		}
	}

	db, err := openDB(location)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := db.AutoMigrate(&taskRow{}); err != nil {
		return fmt.Errorf("migrate task database: %w", err)
	}

	rows := make([]taskRow, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, taskRow{
			Position:    i + 1,
			TaskID:      t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&taskRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("write task database: %w", err)
	}
	return nil
}

func rowToTask(row taskRow) (task.Task, error) {
	if row.TaskID < 1 {
		return task.Task{}, &task.ValidationError{Field: "id", Value: fmt.Sprint(row.TaskID), Err: fmt.Errorf("invalid id %d", row.TaskID)}
	}
	if row.Title == "" {
		return task.Task{}, &task.ValidationError{Field: "title", Value: row.Title, Err: errors.New("title required")}
	}
	status, err := task.ParseStatus(row.Status)
	if err != nil {
		return task.Task{}, err
	}
	// Stored priorities must already be canonical.
	priority, err := task.ParsePriority(row.Priority)
	if err != nil || string(priority) != row.Priority {
		return task.Task{}, &task.ValidationError{
			Field: "priority",
			Value: row.Priority,
			Err:   fmt.Errorf("invalid priority %q", row.Priority),
		}
	}
	return task.Task{
		ID:          row.TaskID,
		Title:       row.Title,
		Description: row.Description,
		Status:      status,
		Priority:    priority,
	}, nil
}

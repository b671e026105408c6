package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"elearn/logger"
	"elearn/validators"
)

// Store is the uniform read/write surface over the data model. Every
// multi-record check-then-write (uniqueness, foreign-key existence,
// cascades, subset checks) runs inside a single transaction; plain
// updates are last-write-wins.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log.With("component", "store")}
}

// orderAsc and orderDesc sort by the display-sequence column. Built
// through clause so the reserved word is quoted correctly on every
// driver.
var (
	orderAsc  = clause.OrderByColumn{Column: clause.Column{Name: "order"}}
	orderDesc = clause.OrderByColumn{Column: clause.Column{Name: "order"}, Desc: true}
)

// checkStruct runs field validation and converts failures into a
// ValidationError.
func checkStruct(v interface{}) error {
	if fields := validators.Struct(v); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// exists verifies that a referenced record is present.
func (s *Store) exists(ctx context.Context, tx *gorm.DB, entity string, model interface{}, id string) error {
	var n int64
	if err := tx.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return s.wrap(err)
	}
	if n == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// firstByID loads one record into dest, translating the driver's
// not-found error into the store taxonomy.
func (s *Store) firstByID(ctx context.Context, entity string, dest interface{}, id string, preloads ...string) error {
	tx := s.db.WithContext(ctx)
	for _, rel := range preloads {
		tx = tx.Preload(rel)
	}
	if err := tx.Where("id = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: entity, ID: id}
		}
		return s.wrap(err)
	}
	return nil
}

// deleteByID removes one row, reporting NotFoundError when nothing
// matched.
func (s *Store) deleteByID(ctx context.Context, tx *gorm.DB, entity string, model interface{}, id string) error {
	res := tx.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return s.wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// countWhere counts dependents for restrict-policy checks.
func (s *Store) countWhere(ctx context.Context, tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return 0, s.wrap(err)
	}
	return n, nil
}

// wrap converts driver and connection failures into
// StoreUnavailableError. Taxonomy errors pass through untouched.
func (s *Store) wrap(err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		uc *UniquenessConflict
		nf *NotFoundError
		ri *ReferentialIntegrityError
		su *StoreUnavailableError
	)
	if errors.As(err, &ve) || errors.As(err, &uc) || errors.As(err, &nf) || errors.As(err, &ri) || errors.As(err, &su) {
		return err
	}
	s.log.Error("store operation failed", "error", err)
	return &StoreUnavailableError{Err: err}
}

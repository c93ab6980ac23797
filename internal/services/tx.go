package services

import (
  "context"

  "gorm.io/gorm"
)

// runInTransaction executes fn inside a database transaction. With no
// database configured fn runs directly and repos fall back to their own
// handles.
func runInTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
  if db == nil {
    return fn(nil)
  }
  return db.WithContext(ctx).Transaction(fn)
}

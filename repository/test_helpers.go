package repository

import (
	"bingohall/application"
	"bingohall/database"
	"bingohall/events"
)

// NewTestUnitOfWorkFactory creates a unit of work factory backed by a fresh
// in-process event bus for tests
func NewTestUnitOfWorkFactory(db *database.DB) application.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, events.NewBus())
}

// CreateTestUnitOfWork creates a single unit of work for testing
func CreateTestUnitOfWork(db *database.DB) application.UnitOfWork {
	return NewTestUnitOfWorkFactory(db).Create()
}

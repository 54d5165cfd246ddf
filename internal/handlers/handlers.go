package handlers

import (
	"time"

	"gallery-backend/internal/catalog"
	"gallery-backend/internal/database"
	"gallery-backend/internal/ingest"
)

type Handlers struct {
	db        *database.Database
	catalog   *catalog.Client
	ingest    *ingest.Service
	startTime time.Time
}

func New(db *database.Database, cat *catalog.Client, ing *ingest.Service) *Handlers {
	return &Handlers{
		db:        db,
		catalog:   cat,
		ingest:    ing,
		startTime: time.Now(),
	}
}

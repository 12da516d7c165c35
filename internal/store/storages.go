package store

import "github.com/MKhiriev/postdesk/internal/logger"

// Storages bundles the repositories built on one database connection.
type Storages struct {
	Settings SettingsRepository
	Posts    PostRepository

	db *DB
}

// NewStorages builds every repository on db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Settings: NewSettingsRepository(db, log),
		Posts:    NewPostRepository(db, log),
		db:       db,
	}
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

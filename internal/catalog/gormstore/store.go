// internal/catalog/gormstore/store.go
package gormstore

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/unimap/globe/internal/catalog"
	"github.com/unimap/globe/pkg/core"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is the gorm-backed catalog backend. It prefers Postgres and falls
// back to local SQLite when Postgres is unreachable.
type Store struct {
	DB              *gorm.DB
	SqlDB           *sql.DB
	IsValid         bool
	ShouldSaveLocal bool
	SqliteFilePath  string
	Logger          zerolog.Logger
}

// New creates a new gorm catalog store. sqlitePath is the fallback database
// file; empty means in-memory.
func New(log zerolog.Logger, sqlitePath string) *Store {
	return &Store{
		SqliteFilePath: sqlitePath,
		Logger:         log,
	}
}

// Init establishes the database connection and migrates the schema.
func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	return s.setup()
}

// Close closes the underlying sql connection.
func (s *Store) Close() error {
	if s.SqlDB == nil {
		return nil
	}
	return s.SqlDB.Close()
}

// connect establishes a database connection, falling back to SQLite if
// Postgres fails.
func (s *Store) connect() error {
	var err error

	s.DB, err = s.getPostgresDB()
	if err != nil {
		s.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
		s.ShouldSaveLocal = true
		s.DB, err = s.getSqliteDB(s.SqliteFilePath)
		if err != nil || s.DB == nil {
			s.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %w", err)
		}
	}

	s.SqlDB, err = s.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}

	if err = s.SqlDB.Ping(); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to validate connection, trying SQLite")
		s.ShouldSaveLocal = true
		s.DB, err = s.getSqliteDB(s.SqliteFilePath)
		if err != nil || s.DB == nil {
			s.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %w", err)
		}
		if s.SqlDB, err = s.DB.DB(); err != nil {
			return fmt.Errorf("failed to access sql interface: %w", err)
		}
	} else {
		s.Logger.Info().Msg("Connected to database")
	}
	s.IsValid = true

	if !s.ShouldSaveLocal {
		s.SqlDB.SetMaxOpenConns(10)
	}
	return nil
}

// getPostgresDB returns a connection to the Postgres database.
func (s *Store) getPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("storage.postgres.host"),
		viper.GetString("storage.postgres.port"),
		viper.GetString("storage.postgres.username"),
		viper.GetString("storage.postgres.password"),
		viper.GetString("storage.postgres.database"),
	)

	s.Logger.Debug().Msgf("Connecting to Postgres DB at '%s'", dsn)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

// getSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (s *Store) getSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		s.IsValid = false
		return nil, err
	}
	if path != "" {
		s.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		s.Logger.Info().Msg("Using in-memory SQLite DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// setup migrates tables.
func (s *Store) setup() error {
	// PostGIS is needed to interpret the WKB location columns on Postgres.
	if s.DB.Dialector.Name() == "postgres" {
		if err := s.DB.Exec(`CREATE EXTENSION IF NOT EXISTS postgis;`).Error; err != nil {
			s.IsValid = false
			return fmt.Errorf("failed to create PostGIS extension: %w", err)
		}
	}

	s.Logger.Info().Msg("Migrating schema")
	if err := s.DB.AutoMigrate(DatabaseModels...); err != nil {
		s.IsValid = false
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ReplaceUniversities swaps the whole university set in one transaction.
func (s *Store) ReplaceUniversities(universities []core.University) error {
	records := make([]University, 0, len(universities))
	seen := make(map[string]struct{}, len(universities))
	for _, u := range universities {
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		rec, err := toRecord(u)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(&University{}).Error; err != nil {
			return fmt.Errorf("clearing universities: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("inserting universities: %w", err)
		}
		return nil
	})
}

// AddUniversity upserts one university keyed by its stable id.
func (s *Store) AddUniversity(u core.University) error {
	rec, err := toRecord(u)
	if err != nil {
		return err
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// UniversityByID looks up one university by its stable id.
func (s *Store) UniversityByID(id string) (core.University, error) {
	var rec University
	err := s.DB.Where("uid = ?", id).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return core.University{}, catalog.ErrNotFound
	}
	if err != nil {
		return core.University{}, err
	}
	return toCore(rec)
}

// Disciplines returns the sorted set of disciplines present in any program map.
// The program map is opaque JSON to SQLite, so the set is computed in process.
func (s *Store) Disciplines() ([]string, error) {
	all, err := s.allUniversities()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, u := range all {
		for d := range u.Programs {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

// TopByDiscipline returns the ranked slice of universities offering the
// discipline. Filtering happens in process for the same reason as
// Disciplines; catalogs are small and read-mostly.
func (s *Store) TopByDiscipline(discipline string, limit int) ([]core.University, error) {
	all, err := s.allUniversities()
	if err != nil {
		return nil, err
	}

	matched := all[:0]
	for _, u := range all {
		if catalog.OffersDiscipline(u, discipline) {
			matched = append(matched, u)
		}
	}
	catalog.SortByRank(matched)

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// AddMentor upserts one mentor directory entry.
func (s *Store) AddMentor(m core.Mentor) error {
	rec, err := toMentorRecord(m)
	if err != nil {
		return err
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// ListMentors returns all mentor directory entries.
func (s *Store) ListMentors() ([]core.Mentor, error) {
	var records []Mentor
	if err := s.DB.Order("uid").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]core.Mentor, 0, len(records))
	for _, rec := range records {
		m, err := toMentorCore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) allUniversities() ([]core.University, error) {
	var records []University
	if err := s.DB.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]core.University, 0, len(records))
	for _, rec := range records {
		u, err := toCore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

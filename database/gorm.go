package database

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/config"
	"github.com/studyabroad/cms-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the persistence handle the server is wired with.
type Storage interface {
	Init() error
	Close() error
	GetDB() *gorm.DB
	HealthCheck() error
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	dsn, err := BuildDSN(env)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	cfg := Config(gormLogger)
	cfg.PrepareStmt = true // Prepare statements for better performance

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		log.Error().Err(err).Msg("unable to connect to PostgreSQL with GORM")
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("host", env.DB_HOST).Str("database", env.DB_NAME).Msg("connected to PostgreSQL")

	return NewGORMStore(db), nil
}

// NewGORMStore wraps an already opened connection.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Config returns the gorm settings shared by every dialect: UTC timestamps
// and driver errors translated into gorm.ErrDuplicatedKey and friends.
func Config(gormLogger logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		TranslateError:         true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// BuildDSN returns the key/value connection string, preferring DATABASE_URL
// when it is set.
func BuildDSN(env *config.EnvironmentVariable) (string, error) {
	if env.DATABASE_URL != "" {
		dsn, err := pq.ParseURL(env.DATABASE_URL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		return dsn + " TimeZone=UTC", nil
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	), nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Country{},
		&model.University{},
		&model.Major{},
		&model.UniversityMajor{},
		&model.Article{},
		&model.StudentInquiry{},
		&model.User{},
		&model.FAQ{},
		&model.Setting{},
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Info().Msg("running GORM AutoMigrate for all models")

	if err := Migrate(s.db); err != nil {
		log.Error().Err(err).Msg("AutoMigrate failed")
		return err
	}

	log.Info().Msg("GORM AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Info().Msg("closing database connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services and handlers
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

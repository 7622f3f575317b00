package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/limaJavier/coursetable/pkg/model"
)

const (
	SqliteDriver   = "sqlite"
	PostgresDriver = "postgres"
)

// Open connects to the catalog database. Only warnings and errors of the ORM are logged, through logger
func Open(driver, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case SqliteDriver:
		dialector = sqlite.Open(dsn)
	case PostgresDriver:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to catalog database: %w", err)
	}

	logger.Info("catalog database connected", zap.String("driver", driver))
	return db, nil
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (repository *GormRepository) Migrate(ctx context.Context) error {
	return repository.db.WithContext(ctx).AutoMigrate(&Record{})
}

// Save upserts records by registration number
func (repository *GormRepository) Save(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return repository.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(records, 500).Error
}

func (repository *GormRepository) FetchSections(ctx context.Context, code, semester, includeFilter string) ([]model.Section, error) {
	filter, err := newSectionFilter(code, semester, includeFilter)
	if err != nil {
		return nil, err
	}

	// The include filter is applied in Go since regular-expression support differs between drivers
	var records []Record
	err = repository.db.WithContext(ctx).
		Where("semester = ? AND code LIKE ?", filter.semester, filter.code+" %").
		Order("registration_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch sections of %v: %w", filter.code, err)
	}
	return toSections(records, filter)
}

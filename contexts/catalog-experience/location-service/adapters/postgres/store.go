package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

type preferenceModel struct {
	SessionID   string    `gorm:"column:session_id;primaryKey"`
	CountryCode string    `gorm:"column:country_code"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (preferenceModel) TableName() string {
	return "location_preferences"
}

// Migrate creates the location_preferences table when it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&preferenceModel{})
}

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Get(ctx context.Context, sessionID string) (ports.PreferenceRecord, bool, error) {
	var row preferenceModel
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PreferenceRecord{}, false, nil
		}
		return ports.PreferenceRecord{}, false, err
	}
	return ports.PreferenceRecord{
		SessionID:   row.SessionID,
		CountryCode: row.CountryCode,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (s *Store) Put(ctx context.Context, record ports.PreferenceRecord) error {
	row := preferenceModel{
		SessionID:   record.SessionID,
		CountryCode: record.CountryCode,
		UpdatedAt:   record.UpdatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"country_code", "updated_at"}),
		}).
		Create(&row).
		Error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

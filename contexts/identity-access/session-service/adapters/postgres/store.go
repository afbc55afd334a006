package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
)

const uniqueViolation = "23505"

type sessionModel struct {
	SessionID     string    `gorm:"column:session_id;primaryKey"`
	Token         string    `gorm:"column:token"`
	UserJSON      []byte    `gorm:"column:user_json;type:jsonb"`
	Authenticated bool      `gorm:"column:authenticated"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string {
	return "browser_sessions"
}

// Migrate creates the browser_sessions table when it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&sessionModel{})
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

func (s *Store) Get(ctx context.Context, sessionID string) (ports.SessionRecord, bool, error) {
	var row sessionModel
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SessionRecord{}, false, nil
		}
		return ports.SessionRecord{}, false, err
	}
	return ports.SessionRecord{
		SessionID:     row.SessionID,
		Token:         row.Token,
		UserJSON:      row.UserJSON,
		Authenticated: row.Authenticated,
		UpdatedAt:     row.UpdatedAt,
	}, true, nil
}

func (s *Store) Put(ctx context.Context, record ports.SessionRecord) error {
	row := sessionModel{
		SessionID:     record.SessionID,
		Token:         record.Token,
		UserJSON:      record.UserJSON,
		Authenticated: record.Authenticated,
		UpdatedAt:     record.UpdatedAt,
	}
	err := s.db.WithContext(ctx).Create(&row).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return s.db.WithContext(ctx).
			Model(&sessionModel{}).
			Where("session_id = ?", record.SessionID).
			Updates(map[string]any{
				"token":         record.Token,
				"user_json":     record.UserJSON,
				"authenticated": record.Authenticated,
				"updated_at":    record.UpdatedAt,
			}).
			Error
	}
	return err
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&sessionModel{}).
		Error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

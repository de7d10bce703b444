package repository

import (
	"context"

	"github.com/moisesmmele/market-analysis/internal/domain"
	"gorm.io/gorm"
)

// SessionRepository handles session and raw listing persistence.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SessionRepository: repository instance bound to db.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save persists a session together with its raw listings and returns its id.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - session: session record with nested raw listings.
// Returns:
//   - string: the persisted session id.
//   - error: non-nil if the insert fails.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) (string, error) {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetByID retrieves a session with its raw listings preloaded in scrape order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: session ID.
// Returns:
//   - *domain.Session: session record if found.
//   - error: non-nil if lookup fails.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Preload("Listings", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns sessions without their raw listings, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of sessions; non-positive means no limit.
//   - offset: number of sessions to skip.
// Returns:
//   - []domain.Session: matching session records.
//   - error: non-nil if the query fails.
func (r *SessionRepository) List(ctx context.Context, limit, offset int) ([]domain.Session, error) {
	var sessions []domain.Session
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetOneListing retrieves a single raw listing by id.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: raw listing ID.
// Returns:
//   - *domain.RawListing: raw listing if found.
//   - error: non-nil if lookup fails.
func (r *SessionRepository) GetOneListing(ctx context.Context, id string) (*domain.RawListing, error) {
	var listing domain.RawListing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// MetaMap is a custom type for storing session metadata as JSON in the database.
type MetaMap map[string]interface{}

// Value implements the driver.Valuer interface for database serialization.
func (m MetaMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for database deserialization.
func (m *MetaMap) Scan(value interface{}) error {
	if value == nil {
		*m = MetaMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan MetaMap")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// Session groups the raw listings collected by one scrape run. The session
// record is read-only during processing; the pipeline derives its own working
// copy of canonical listings from the raw payloads.
type Session struct {
	ID          string       `gorm:"type:text;primaryKey" json:"id"`
	Title       string       `gorm:"type:text" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	StartTime   time.Time    `json:"start_time"`
	FinishTime  time.Time    `json:"finish_time"`
	Meta        MetaMap      `gorm:"type:text" json:"meta"`
	Listings    []RawListing `gorm:"foreignKey:SessionID" json:"listings,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string {
	return "sessions"
}

// Start stamps the session start time.
func (s *Session) Start() {
	s.StartTime = time.Now()
}

// Finish stamps the session finish time.
func (s *Session) Finish() {
	s.FinishTime = time.Now()
}

// RawListing is one provider record exactly as scraped, owned by a session
// and immutable once stored.
type RawListing struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	SessionID string    `gorm:"type:text;not null;index" json:"session_id"`
	Position  int       `gorm:"not null" json:"position"`
	RawJSON   string    `gorm:"type:text;not null" json:"raw_json"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for RawListing.
func (RawListing) TableName() string {
	return "raw_listings"
}

package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ SeenRepository = (*SQLSeenRepository)(nil)

// SQLSeenRepository handles database operations for processed item identities
type SQLSeenRepository struct {
	db *DB
}

func NewSeenRepository(db *DB) *SQLSeenRepository {
	return &SQLSeenRepository{db: db}
}

// IsSeen reports whether itemID has already been processed in any run.
func (r *SQLSeenRepository) IsSeen(itemID string) (bool, error) {
	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM seen_items WHERE item_id = ?
	`, itemID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check seen item: %w", err)
	}

	return true, nil
}

// MarkSeen records itemID as processed. Marking an already-seen identity is a
// no-op and never overwrites first_seen.
func (r *SQLSeenRepository) MarkSeen(itemID string) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO seen_items (item_id, first_seen) VALUES (?, ?)
	`, itemID, time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to mark item as seen: %w", err)
	}

	return nil
}

// GetSeenCount returns the total number of recorded identities
func (r *SQLSeenRepository) GetSeenCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM seen_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get seen item count: %w", err)
	}
	return count, nil
}

package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

var _ CacheRepository = (*SQLCacheRepository)(nil)

// SQLCacheRepository handles database operations for the translation cache
type SQLCacheRepository struct {
	db *DB
}

func NewCacheRepository(db *DB) *SQLCacheRepository {
	return &SQLCacheRepository{db: db}
}

// CacheKey derives the deterministic cache key for a translation request.
// Equal inputs always produce equal keys; the target language is part of the
// key so the same text translated into two languages occupies two rows.
func CacheKey(translator, targetLang, sourceText string) string {
	hash := sha256.Sum256([]byte(translator + ":" + targetLang + ":" + sourceText))
	return hex.EncodeToString(hash[:])
}

// Get returns the cached translation for key, if any.
func (r *SQLCacheRepository) Get(key string) (string, bool, error) {
	var translated string
	err := r.db.QueryRow(`
		SELECT translated FROM translated_cache WHERE key = ?
	`, key).Scan(&translated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return translated, true, nil
}

// Put upserts a translation under key. Last write wins.
func (r *SQLCacheRepository) Put(key, translator, targetLang, sourceText, translated string) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO translated_cache
			(key, created_at, translator, target_lang, source_len, translated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, key, time.Now().UTC().Format(time.RFC3339), translator, targetLang, len(sourceText), translated)

	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}

	return nil
}

// GetRecord returns the full cache row for key.
func (r *SQLCacheRepository) GetRecord(key string) (*CacheRecord, error) {
	var rec CacheRecord
	var createdAt string
	err := r.db.QueryRow(`
		SELECT key, created_at, translator, target_lang, source_len, translated
		FROM translated_cache
		WHERE key = ?
	`, key).Scan(&rec.Key, &createdAt, &rec.Translator, &rec.TargetLang, &rec.SourceLen, &rec.Translated)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache record: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}

	return &rec, nil
}

// GetEntryCount returns the total number of cached translations
func (r *SQLCacheRepository) GetEntryCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM translated_cache").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get cache entry count: %w", err)
	}
	return count, nil
}

package database

import (
	"time"
)

// CacheRecord is one row of the translation cache.
type CacheRecord struct {
	Key        string
	CreatedAt  time.Time
	Translator string
	TargetLang string
	SourceLen  int
	Translated string
}

// SeenItem records an entry identity that has already been processed.
type SeenItem struct {
	ItemID    string
	FirstSeen time.Time
}

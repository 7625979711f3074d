package database

// CacheRepository persists translations keyed by a deterministic hash so a
// given (translator, language, text) combination is billed at most once.
type CacheRepository interface {
	Get(key string) (string, bool, error)
	Put(key, translator, targetLang, sourceText, translated string) error
}

// SeenRepository persists the identities of entries that already produced an
// output item. The set only grows; there is no eviction.
type SeenRepository interface {
	IsSeen(itemID string) (bool, error)
	MarkSeen(itemID string) error
}

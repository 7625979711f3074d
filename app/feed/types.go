package feed

// Entry is one normalized feed item as supplied by the upstream feed.
type Entry struct {
	Identity string // stable hash of upstream id + link + title
	Title    string
	Link     string
	Summary  string
	PubDate  string // RFC 822 formatted, empty when the source date is unusable
}

// OutputItem is one fully processed entry, ready for feed assembly.
// Never mutated after construction.
type OutputItem struct {
	Title       string
	Link        string
	GUID        string // equals the entry identity
	PubDate     string
	Description string // raw markup, emitted inside CDATA
}

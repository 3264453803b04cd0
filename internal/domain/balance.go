package domain

// Balance is the aggregate view of one (account, currency) ledger.
// Its three fields are read independently and do not form a snapshot.
type Balance struct {
	Total      string
	ByContext  map[string]string
	EntryCount int64
}

// Page is one slice of a full scan over a ledger's entries.
type Page struct {
	Entries    []*Entry
	NextCursor string
	HasMore    bool
	// Skipped holds ids whose stored payload could not be decoded.
	Skipped []string
}

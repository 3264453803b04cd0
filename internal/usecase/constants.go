package usecase

const (
	// DefaultKeyPrefix is the first segment of every derived ledger key.
	DefaultKeyPrefix = "ledger"

	// DefaultMaxEntriesPerKey caps the number of entries in one (account, currency) ledger.
	DefaultMaxEntriesPerKey int64 = 1_000_000

	// InitialCursor starts a paginated scan; a returned cursor equal to it ends the scan.
	InitialCursor = "0"

	// maxRemoveAttempts bounds re-reads when a removal loses a race to a concurrent writer.
	maxRemoveAttempts = 5
)

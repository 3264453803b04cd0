package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/iho/ledgerkv/internal/domain"
)

// parseCursor turns an external cursor token into the store-native scan position.
func parseCursor(cursor string) (uint64, error) {
	if cursor == "" {
		return 0, nil
	}

	pos, err := strconv.ParseUint(cursor, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCursor, cursor)
	}

	return pos, nil
}

func formatCursor(pos uint64) string {
	return strconv.FormatUint(pos, 10)
}

// GetEntriesPaginated returns one page of a full scan over the ledger's entries.
//
// Start with InitialCursor and pass back NextCursor until HasMore is false. Without
// concurrent writers every entry is returned exactly once. Entries added or removed
// mid-scan may or may not be seen. Undecodable records are left out of Entries and
// their ids listed in Skipped.
func (uc *LedgerUseCase) GetEntriesPaginated(ctx context.Context, accountID, currency, cursor string, pageSize int) (_ *domain.Page, err error) {
	defer func(start time.Time) { uc.observe("get_entries", start, err) }(time.Now())

	pos, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}

	pageSize = domain.ValidatePageSize(pageSize)

	fields, next, err := uc.store.HScan(ctx, uc.keys(accountID, currency).entries, pos, int64(pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	page := &domain.Page{
		Entries:    make([]*domain.Entry, 0, len(ids)),
		NextCursor: formatCursor(next),
	}
	page.HasMore = page.NextCursor != InitialCursor

	for _, id := range ids {
		entry, err := domain.UnmarshalEntry([]byte(fields[id]))
		if err != nil {
			uc.logger.Warn().
				Err(err).
				Str("account_id", accountID).
				Str("currency", currency).
				Str("entry_id", id).
				Msg("skipping malformed entry")

			page.Skipped = append(page.Skipped, id)
			continue
		}

		page.Entries = append(page.Entries, entry)
	}

	return page, nil
}

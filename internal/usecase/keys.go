package usecase

// ledgerKeys are the three co-located keys of one (account, currency) aggregate.
type ledgerKeys struct {
	entries  string // hash: entry id -> serialized entry
	total    string // string: running total in minor units
	contexts string // hash: context -> running sum in minor units
}

func deriveKeys(prefix, accountID, currency string) ledgerKeys {
	base := prefix + ":" + accountID + ":" + currency

	return ledgerKeys{
		entries:  base,
		total:    base + ":total",
		contexts: base + ":ctx",
	}
}

func (k ledgerKeys) all() []string {
	return []string{k.entries, k.total, k.contexts}
}

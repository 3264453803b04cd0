package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgerkv/internal/adapter/http/dto"
	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	AddEntry(ctx context.Context, accountID, currency string, entry *domain.Entry) error
	RemoveEntry(ctx context.Context, accountID, currency, entryID string) (bool, error)
	GetEntry(ctx context.Context, accountID, currency, entryID string) (*domain.Entry, bool, error)
	GetSum(ctx context.Context, accountID, currency string) (string, error)
	GetBalance(ctx context.Context, accountID, currency string) (*domain.Balance, error)
	GetEntriesPaginated(ctx context.Context, accountID, currency, cursor string, pageSize int) (*domain.Page, error)
	ClearLedger(ctx context.Context, accountID, currency string) error
}

// ReconciliationService defines the reconciliation behavior needed by LedgerHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context, accountID, currency string) (*usecase.ReconciliationResult, error)
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error { return operation() }

// LedgerHandler handles ledger HTTP requests.
//
// Reads, clears and reconciliation runs go through the retrier. Adds and removes
// never do: a retried add that already landed would report a duplicate.
type LedgerHandler struct {
	ledger     LedgerService
	reconciler ReconciliationService
	retrier    usecase.Retrier
}

// NewLedgerHandler creates a new LedgerHandler. A nil retrier disables retries.
func NewLedgerHandler(ledger LedgerService, reconciler ReconciliationService, retrier usecase.Retrier) *LedgerHandler {
	if retrier == nil {
		retrier = noRetry{}
	}

	return &LedgerHandler{
		ledger:     ledger,
		reconciler: reconciler,
		retrier:    retrier,
	}
}

func ledgerScope(r *http.Request) (string, string) {
	return chi.URLParam(r, "account"), chi.URLParam(r, "currency")
}

// AddEntry books a new entry.
func (h *LedgerHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)

	var req dto.AddEntryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry := req.ToDomain()
	if err := h.ledger.AddEntry(r.Context(), accountID, currency, entry); err != nil {
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())
		return
	}

	if entry.Currency == "" {
		entry.Currency = currency
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// ListEntries returns one page of entries.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)
	cursor := r.URL.Query().Get("cursor")
	limit := parseIntQuery(r, "limit", domain.DefaultPageSize)

	var page *domain.Page
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		page, err = h.ledger.GetEntriesPaginated(r.Context(), accountID, currency, cursor, limit)
		return err
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFromDomain(page))
}

// GetEntry retrieves a single entry.
func (h *LedgerHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)
	entryID := chi.URLParam(r, "id")

	var (
		entry *domain.Entry
		found bool
	)
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		entry, found, err = h.ledger.GetEntry(r.Context(), accountID, currency, entryID)
		return err
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	if !found {
		writeError(w, http.StatusNotFound, "entry not found", entryID)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// RemoveEntry deletes an entry and reverses its contribution.
func (h *LedgerHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)
	entryID := chi.URLParam(r, "id")

	removed, err := h.ledger.RemoveEntry(r.Context(), accountID, currency, entryID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to remove entry", err.Error())
		return
	}

	if !removed {
		writeError(w, http.StatusNotFound, "entry not found", entryID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSum returns the running total.
func (h *LedgerHandler) GetSum(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)

	var sum string
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		sum, err = h.ledger.GetSum(r.Context(), accountID, currency)
		return err
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get sum", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SumResponse{
		AccountID: accountID,
		Currency:  currency,
		Sum:       sum,
	})
}

// GetBalance returns total, per-context sums and entry count.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)

	var balance *domain.Balance
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		balance, err = h.ledger.GetBalance(r.Context(), accountID, currency)
		return err
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(accountID, currency, balance))
}

// ClearLedger deletes every entry and aggregate of the ledger.
func (h *LedgerHandler) ClearLedger(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)

	err := h.retrier.Retry(r.Context(), func() error {
		return h.ledger.ClearLedger(r.Context(), accountID, currency)
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to clear ledger", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reconcile recomputes aggregates from entries. A mismatch answers 409 with the report.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	accountID, currency := ledgerScope(r)

	var result *usecase.ReconciliationResult
	err := h.retrier.Retry(r.Context(), func() error {
		var err error
		result, err = h.reconciler.Reconcile(r.Context(), accountID, currency)
		return err
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
	case errors.Is(err, domain.ErrInconsistentLedger) && result != nil:
		writeJSON(w, http.StatusConflict, dto.ReconciliationFromUseCase(result))
	default:
		writeError(w, mapDomainError(err), "failed to reconcile ledger", err.Error())
	}
}

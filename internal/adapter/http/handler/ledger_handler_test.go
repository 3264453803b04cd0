package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerkv/internal/adapter/http/dto"
	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

type ledgerServiceStub struct {
	addFn     func(ctx context.Context, accountID, currency string, entry *domain.Entry) error
	removeFn  func(ctx context.Context, accountID, currency, entryID string) (bool, error)
	getFn     func(ctx context.Context, accountID, currency, entryID string) (*domain.Entry, bool, error)
	sumFn     func(ctx context.Context, accountID, currency string) (string, error)
	balanceFn func(ctx context.Context, accountID, currency string) (*domain.Balance, error)
	pageFn    func(ctx context.Context, accountID, currency, cursor string, pageSize int) (*domain.Page, error)
	clearFn   func(ctx context.Context, accountID, currency string) error
}

func (s *ledgerServiceStub) AddEntry(ctx context.Context, accountID, currency string, entry *domain.Entry) error {
	return s.addFn(ctx, accountID, currency, entry)
}

func (s *ledgerServiceStub) RemoveEntry(ctx context.Context, accountID, currency, entryID string) (bool, error) {
	return s.removeFn(ctx, accountID, currency, entryID)
}

func (s *ledgerServiceStub) GetEntry(ctx context.Context, accountID, currency, entryID string) (*domain.Entry, bool, error) {
	return s.getFn(ctx, accountID, currency, entryID)
}

func (s *ledgerServiceStub) GetSum(ctx context.Context, accountID, currency string) (string, error) {
	return s.sumFn(ctx, accountID, currency)
}

func (s *ledgerServiceStub) GetBalance(ctx context.Context, accountID, currency string) (*domain.Balance, error) {
	return s.balanceFn(ctx, accountID, currency)
}

func (s *ledgerServiceStub) GetEntriesPaginated(ctx context.Context, accountID, currency, cursor string, pageSize int) (*domain.Page, error) {
	return s.pageFn(ctx, accountID, currency, cursor, pageSize)
}

func (s *ledgerServiceStub) ClearLedger(ctx context.Context, accountID, currency string) error {
	return s.clearFn(ctx, accountID, currency)
}

type reconcilerStub struct {
	reconcileFn func(ctx context.Context, accountID, currency string) (*usecase.ReconciliationResult, error)
}

func (s *reconcilerStub) Reconcile(ctx context.Context, accountID, currency string) (*usecase.ReconciliationResult, error) {
	return s.reconcileFn(ctx, accountID, currency)
}

// countingRetrier retries once on any error.
type countingRetrier struct {
	calls int
}

func (r *countingRetrier) Retry(_ context.Context, operation func() error) error {
	r.calls++
	if err := operation(); err != nil {
		return operation()
	}
	return nil
}

var errUnavailable = fmt.Errorf("%w: redis GET: connection refused", domain.ErrStoreUnavailable)

func setLedgerParams(r *http.Request, account, currency, id string) *http.Request {
	params := chi.RouteParams{
		Keys:   []string{"account", "currency"},
		Values: []string{account, currency},
	}
	if id != "" {
		params.Keys = append(params.Keys, "id")
		params.Values = append(params.Values, id)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{URLParams: params}))
}

func TestLedgerHandler_AddEntry_Success(t *testing.T) {
	var (
		capturedAccount, capturedCurrency string
		captured                          *domain.Entry
	)

	h := NewLedgerHandler(&ledgerServiceStub{
		addFn: func(ctx context.Context, accountID, currency string, entry *domain.Entry) error {
			capturedAccount, capturedCurrency, captured = accountID, currency, entry
			return nil
		},
	}, nil, nil)

	body := []byte(`{"id":"t1","context":"deposit","amount":"100.00"}`)
	req := setLedgerParams(httptest.NewRequest(http.MethodPost, "/api/v1/ledgers/u1/usd/entries", bytes.NewReader(body)), "u1", "usd", "")
	rec := httptest.NewRecorder()

	h.AddEntry(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if capturedAccount != "u1" || capturedCurrency != "usd" {
		t.Fatalf("expected scope u1/usd, got %s/%s", capturedAccount, capturedCurrency)
	}
	if captured.ID != "t1" || captured.Context != "deposit" || !captured.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected entry to match request, got %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Currency != "usd" {
		t.Fatalf("expected currency filled from path, got %q", resp.Currency)
	}
}

func TestLedgerHandler_AddEntry_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"invalid body", `{`, nil, http.StatusBadRequest},
		{"duplicate", `{"id":"t1","context":"deposit","amount":"1"}`, domain.ErrDuplicateEntry, http.StatusConflict},
		{"limit", `{"id":"t1","context":"deposit","amount":"1"}`, domain.ErrLimitExceeded, http.StatusUnprocessableEntity},
		{"bad precision", `{"id":"t1","context":"deposit","amount":"1.001"}`, domain.ErrInvalidAmount, http.StatusBadRequest},
		{"store down", `{"id":"t1","context":"deposit","amount":"1"}`, errUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrier := &countingRetrier{}
			calls := 0
			h := NewLedgerHandler(&ledgerServiceStub{
				addFn: func(context.Context, string, string, *domain.Entry) error {
					calls++
					return tt.err
				},
			}, nil, retrier)

			req := setLedgerParams(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(tt.body))), "u1", "usd", "")
			rec := httptest.NewRecorder()

			h.AddEntry(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if calls > 1 || retrier.calls != 0 {
				t.Fatalf("adds must never be retried, got %d calls and %d retries", calls, retrier.calls)
			}
		})
	}
}

func TestLedgerHandler_RemoveEntry(t *testing.T) {
	tests := []struct {
		name    string
		removed bool
		err     error
		status  int
	}{
		{"removed", true, nil, http.StatusNoContent},
		{"missing", false, nil, http.StatusNotFound},
		{"contention", false, domain.ErrConcurrentModification, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLedgerHandler(&ledgerServiceStub{
				removeFn: func(ctx context.Context, accountID, currency, entryID string) (bool, error) {
					if entryID != "t1" {
						t.Fatalf("expected entry t1, got %s", entryID)
					}
					return tt.removed, tt.err
				},
			}, nil, nil)

			req := setLedgerParams(httptest.NewRequest(http.MethodDelete, "/", nil), "u1", "usd", "t1")
			rec := httptest.NewRecorder()

			h.RemoveEntry(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLedgerHandler_GetEntry(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		getFn: func(ctx context.Context, accountID, currency, entryID string) (*domain.Entry, bool, error) {
			if entryID == "missing" {
				return nil, false, nil
			}
			return &domain.Entry{ID: entryID, Context: "deposit", Currency: currency, Amount: decimal.NewFromInt(5)}, true, nil
		},
	}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetEntry(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", "t1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "t1" || resp.Context != "deposit" {
		t.Fatalf("unexpected entry: %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.GetEntry(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLedgerHandler_GetSum_RetriesStoreOutage(t *testing.T) {
	calls := 0
	retrier := &countingRetrier{}

	h := NewLedgerHandler(&ledgerServiceStub{
		sumFn: func(context.Context, string, string) (string, error) {
			calls++
			if calls == 1 {
				return "", errUnavailable
			}
			return "70.00", nil
		},
	}, nil, retrier)

	rec := httptest.NewRecorder()
	h.GetSum(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls != 2 || retrier.calls != 1 {
		t.Fatalf("expected one retried read, got %d calls and %d retries", calls, retrier.calls)
	}

	var resp dto.SumResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Sum != "70.00" || resp.AccountID != "u1" || resp.Currency != "usd" {
		t.Fatalf("unexpected sum response: %+v", resp)
	}
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(context.Context, string, string) (*domain.Balance, error) {
			return &domain.Balance{
				Total:      "70.00",
				ByContext:  map[string]string{"deposit": "100.00", "withdrawal": "-30.00"},
				EntryCount: 2,
			}, nil
		},
	}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetBalance(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != "70.00" || resp.EntryCount != 2 || resp.ByContext["withdrawal"] != "-30.00" {
		t.Fatalf("unexpected balance: %+v", resp)
	}
}

func TestLedgerHandler_ListEntries(t *testing.T) {
	var (
		gotCursor string
		gotSize   int
	)

	h := NewLedgerHandler(&ledgerServiceStub{
		pageFn: func(ctx context.Context, accountID, currency, cursor string, pageSize int) (*domain.Page, error) {
			gotCursor, gotSize = cursor, pageSize
			if cursor == "bogus" {
				return nil, domain.ErrInvalidCursor
			}
			return &domain.Page{
				Entries:    []*domain.Entry{{ID: "t1", Context: "deposit", Currency: "usd", Amount: decimal.NewFromInt(1)}},
				NextCursor: "0",
			}, nil
		},
	}, nil, nil)

	rec := httptest.NewRecorder()
	h.ListEntries(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/?cursor=7&limit=25", nil), "u1", "usd", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCursor != "7" || gotSize != 25 {
		t.Fatalf("expected cursor 7 and limit 25, got %q and %d", gotCursor, gotSize)
	}

	var resp dto.EntryPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 1 || resp.HasMore || resp.NextCursor != "0" {
		t.Fatalf("unexpected page: %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.ListEntries(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", ""))
	if gotCursor != "" || gotSize != domain.DefaultPageSize {
		t.Fatalf("expected default cursor and page size, got %q and %d", gotCursor, gotSize)
	}

	rec = httptest.NewRecorder()
	h.ListEntries(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/?cursor=bogus", nil), "u1", "usd", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid cursor, got %d", rec.Code)
	}
}

func TestLedgerHandler_ClearLedger(t *testing.T) {
	cleared := false
	h := NewLedgerHandler(&ledgerServiceStub{
		clearFn: func(ctx context.Context, accountID, currency string) error {
			cleared = accountID == "u1" && currency == "usd"
			return nil
		},
	}, nil, nil)

	rec := httptest.NewRecorder()
	h.ClearLedger(rec, setLedgerParams(httptest.NewRequest(http.MethodDelete, "/", nil), "u1", "usd", ""))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !cleared {
		t.Fatal("expected ledger u1/usd to be cleared")
	}
}

func TestLedgerHandler_Reconcile(t *testing.T) {
	report := &usecase.ReconciliationResult{
		AccountID:     "u1",
		Currency:      "usd",
		RecordedTotal: decimal.RequireFromString("72.50"),
		Difference:    decimal.RequireFromString("2.50"),
	}

	tests := []struct {
		name   string
		result *usecase.ReconciliationResult
		err    error
		status int
	}{
		{"reconciled", &usecase.ReconciliationResult{AccountID: "u1", Currency: "usd", IsReconciled: true}, nil, http.StatusOK},
		{"mismatch", report, fmt.Errorf("%w: u1/usd", domain.ErrInconsistentLedger), http.StatusConflict},
		{"store down", nil, errUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLedgerHandler(nil, &reconcilerStub{
				reconcileFn: func(context.Context, string, string) (*usecase.ReconciliationResult, error) {
					return tt.result, tt.err
				},
			}, nil)

			rec := httptest.NewRecorder()
			h.Reconcile(rec, setLedgerParams(httptest.NewRequest(http.MethodGet, "/", nil), "u1", "usd", ""))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}

			if tt.result == nil {
				return
			}

			var resp dto.ReconciliationResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.IsReconciled != tt.result.IsReconciled || resp.AccountID != "u1" {
				t.Fatalf("unexpected report: %+v", resp)
			}
		})
	}
}

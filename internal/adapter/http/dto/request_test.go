package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAddEntryRequest_ToDomain(t *testing.T) {
	req := &AddEntryRequest{
		ID:       "t1",
		Context:  "deposit",
		Currency: "usd",
		Amount:   decimal.RequireFromString("100.00"),
	}

	got := req.ToDomain()

	if got.ID != "t1" || got.Context != "deposit" || got.Currency != "usd" {
		t.Fatalf("ToDomain() = %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected amount 100, got %s", got.Amount)
	}
}

func TestAddEntryRequest_DecodesAmountForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string amount", `{"id":"t1","context":"fee","amount":"-0.10"}`, "-0.1"},
		{"number amount", `{"id":"t1","context":"fee","amount":12.5}`, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddEntryRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if !req.Amount.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected amount %s, got %s", tt.want, req.Amount)
			}
			if req.Currency != "" {
				t.Fatalf("expected currency to stay empty, got %q", req.Currency)
			}
		})
	}
}

func TestAddEntryRequest_RejectsBadAmount(t *testing.T) {
	var req AddEntryRequest
	if err := json.Unmarshal([]byte(`{"id":"t1","context":"fee","amount":"ten"}`), &req); err == nil {
		t.Fatal("expected decode error for non-numeric amount")
	}
}

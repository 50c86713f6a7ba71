package handler

import (
	"net/http"

	"github.com/kalrend/warchest/internal/ledger"
)

// HandleListTransactions returns ledger entries, optionally filtered by
// the "type" query parameter (income or expense)
func HandleListTransactions(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txs, err := svc.Transactions(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, txs)
	}
}

// HandleLedgerSummary returns income, expense, and net totals
func HandleLedgerSummary(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context())
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, sum)
	}
}

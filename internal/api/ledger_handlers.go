package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"utfpr.edu.br/menfin/internal/core"
	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/store"
)

// monthParam reads ?month=YYYY-MM. ok is false when the value is malformed and
// an error has already been written.
func monthParam(w http.ResponseWriter, r *http.Request) (month *time.Time, ok bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return nil, true
	}
	m, err := locale.ParseMonth(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return nil, false
	}
	return &m, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid id"})
		return 0, false
	}
	return id, true
}

func (h *APIHandler) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	txs, err := h.ledger.ListTransactions(r.Context(), userIDFrom(r), month)
	if err != nil {
		writeError(w, err, "Failed to list transactions")
		return
	}
	if txs == nil {
		txs = []store.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *APIHandler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req core.TransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tx, err := h.ledger.CreateTransaction(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, err, "Failed to save transaction")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *APIHandler) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	tx, err := h.ledger.GetTransaction(r.Context(), userIDFrom(r), id)
	if err != nil {
		writeError(w, err, "Failed to get transaction")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *APIHandler) UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req core.TransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tx, err := h.ledger.UpdateTransaction(r.Context(), userIDFrom(r), id, req)
	if err != nil {
		writeError(w, err, "Failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *APIHandler) DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.ledger.DeleteTransaction(r.Context(), userIDFrom(r), id); err != nil {
		writeError(w, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
	goals, err := h.ledger.ListGoals(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err, "Failed to list goals")
		return
	}
	if goals == nil {
		goals = []store.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *APIHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var req core.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	goal, err := h.ledger.CreateGoal(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, err, "Failed to save goal")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *APIHandler) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	fbs, err := h.ledger.ListFeedback(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err, "Failed to list feedback")
		return
	}
	if fbs == nil {
		fbs = []store.Feedback{}
	}
	writeJSON(w, http.StatusOK, fbs)
}

func (h *APIHandler) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req core.FeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fb, err := h.ledger.AddFeedback(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, err, "Failed to save feedback")
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

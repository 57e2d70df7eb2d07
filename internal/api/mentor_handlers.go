package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"utfpr.edu.br/menfin/internal/core"
)

func (h *APIHandler) QuickQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.QuickQuestions)
}

type AskRequest struct {
	Question string `json:"question"` // quick-question code or free text
}

func (h *APIHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Question is required"})
		return
	}
	answer, err := h.mentor.Ask(r.Context(), userIDFrom(r), req.Question)
	if err != nil {
		writeError(w, err, "Failed to answer question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (h *APIHandler) GoalInsightsHandler(w http.ResponseWriter, r *http.Request) {
	insights, err := h.mentor.GoalInsights(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err, "Failed to generate insights")
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *APIHandler) MonthSummaryHandler(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	target := time.Now()
	if month != nil {
		target = *month
	}
	summary, err := h.mentor.MonthSummary(r.Context(), userIDFrom(r), target)
	if err != nil {
		writeError(w, err, "Failed to build month summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *APIHandler) MentorStateHandler(w http.ResponseWriter, r *http.Request) {
	feature := core.Feature(chi.URLParam(r, "feature"))
	if !feature.Valid() {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Unknown feature"})
		return
	}
	writeJSON(w, http.StatusOK, h.mentor.State(userIDFrom(r), feature))
}

func (h *APIHandler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.chat.GetChat(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err, "Failed to get chat")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type PostMessageRequest struct {
	Text string `json:"text"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Message text is required"})
		return
	}
	reply, err := h.chat.PostMessage(r.Context(), userIDFrom(r), strings.TrimSpace(req.Text))
	if err != nil {
		writeError(w, err, "Failed to post message")
		return
	}
	writeJSON(w, http.StatusCreated, reply)
}

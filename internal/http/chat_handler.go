package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"smartlibrary/internal/chat"
	"smartlibrary/internal/httpx"
)

type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatReq struct {
	Message  string `json:"message" validate:"required,max=1000"`
	Language string `json:"language" validate:"max=10"`
}

// Chat runs the full pipeline: criteria extraction, catalog search and a
// localized summary. The reply body is always 200 with its own success flag
// so chat clients render errors inline.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Message = strings.TrimSpace(req.Message)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	reply := h.svc.Chat(r.Context(), req.Message, req.Language)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(reply)
}

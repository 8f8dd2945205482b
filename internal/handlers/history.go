package handlers

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/interfaces"
)

// HistoryHandler lists recent tool invocations for operators.
type HistoryHandler struct {
	logger *common.Logger
	store  interfaces.InvocationStore
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(logger *common.Logger, store interfaces.InvocationStore) *HistoryHandler {
	return &HistoryHandler{logger: logger, store: store}
}

// ServeHTTP handles GET /api/history?limit=N.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to load invocation history")
		WriteError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	WriteJSON(w, http.StatusOK, recs)
}

package handler

import (
	"net/http"
)

// FxRates returns the ECB daily reference rates. Informational only: the
// forecast never converts currencies.
func (h *Handler) FxRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.fx.DailyRates()
	if err != nil {
		h.log.Errorf("Failed to fetch FX rates: %v", err)
		respondJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to fetch reference rates"})
		return
	}
	respondJSON(w, http.StatusOK, rates)
}

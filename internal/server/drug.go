package server

import (
	"errors"
	"net/http"
	"strings"

	"paramedai/internal/drug"
)

// handleDrugCalculate serves deterministic dose calculation. Doses are
// never produced by the model.
func (h *Handler) handleDrugCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body drug.Request
	if !readJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Drug) == "" {
		http.Error(w, "drug_name is required", http.StatusBadRequest)
		return
	}
	if body.WeightKg <= 0 {
		http.Error(w, "weight_kg must be positive", http.StatusBadRequest)
		return
	}

	result, err := drug.Calculate(body)
	if err != nil {
		var lookup *drug.LookupError
		if errors.As(err, &lookup) {
			indication := body.Indication
			if indication == "" {
				indication = "unknown"
			}
			writeJSON(w, http.StatusOK, drug.Result{
				DrugName:       body.Drug,
				Indication:     indication,
				Dose:           "N/A",
				CalculatedDose: lookup.Message,
				Route:          "N/A",
				Warning:        lookup.Message,
				Widget:         lookup.Widget,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDrugList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	drugs := make(map[string][]string)
	for _, name := range drug.Available() {
		drugs[name] = drug.Indications(name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"drugs": drugs,
		"count": len(drugs),
	})
}

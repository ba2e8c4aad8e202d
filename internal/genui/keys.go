package genui

import "strings"

// Models are inconsistent about field naming: the same field arrives as
// drug_name, drugName, or DrugName depending on the run. Canonical form is
// lower camelCase, matching the widget catalog the client renders.
var keyAliases = map[string]string{
	"drug_name":              "drugName",
	"calculated_dose":        "calculatedDose",
	"max_dose":               "maxDose",
	"patient_id":             "patientId",
	"protocol_name":          "protocolName",
	"current_step":           "currentStep",
	"st_changes":             "stChanges",
	"urgent_action":          "urgentAction",
	"differential_diagnosis": "differentialDiagnosis",
	"chief_complaint":        "chiefComplaint",
	"original_text":          "originalText",
	"original_language":      "originalLanguage",
	"translated_text":        "translatedText",
	"target_language":        "targetLanguage",
	"medical_terms":          "medicalTerms",
}

// CanonicalKey maps a raw payload key to its canonical camelCase form.
// snake_case keys without an explicit alias are converted mechanically;
// already-canonical keys pass through unchanged.
func CanonicalKey(key string) string {
	if key == "" {
		return key
	}
	if c, ok := keyAliases[key]; ok {
		return c
	}
	if !strings.Contains(key, "_") {
		return key
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// CanonicalizeKeys rewrites every top-level key of data to its canonical
// form. On alias collision the canonical spelling already present wins.
func CanonicalizeKeys(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		ck := CanonicalKey(k)
		if ck != k {
			if _, exists := data[ck]; exists {
				continue
			}
		}
		out[ck] = v
	}
	return out
}

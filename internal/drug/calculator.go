package drug

import (
	"fmt"
	"strconv"
	"strings"

	"paramedai/internal/genui"
)

// Request carries the patient parameters for a dose calculation.
type Request struct {
	Drug       string   `json:"drug_name"`
	WeightKg   float64  `json:"weight_kg"`
	Indication string   `json:"indication,omitempty"`
	Pediatric  bool     `json:"is_pediatric,omitempty"`
	AgeYears   *float64 `json:"age_years,omitempty"`
	Pregnant   bool     `json:"is_pregnant,omitempty"`
}

// Result is a completed dose calculation plus its DrugDoseCard widget.
type Result struct {
	DrugName       string       `json:"drug_name"`
	Indication     string       `json:"indication"`
	Dose           string       `json:"dose"`
	CalculatedDose string       `json:"calculated_dose"`
	Route          string       `json:"route"`
	Concentration  string       `json:"concentration,omitempty"`
	Frequency      string       `json:"frequency,omitempty"`
	MaxDose        string       `json:"max_dose,omitempty"`
	Warning        string       `json:"warning"`
	PediatricNote  string       `json:"pediatric_note,omitempty"`
	Widget         genui.Widget `json:"widget"`
}

// LookupError reports an unknown drug or indication. It carries the
// WarningCard clients render in place of a dose card.
type LookupError struct {
	Message   string
	Available []string
	Widget    genui.Widget
}

func (e *LookupError) Error() string { return e.Message }

func canonicalKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.ReplaceAll(k, " ", "_")
	return strings.ReplaceAll(k, "-", "_")
}

// Calculate computes a deterministic dose for the request. The only
// error cases are an unknown drug or indication, both returned as
// *LookupError.
func Calculate(req Request) (Result, error) {
	drugKey := canonicalKey(req.Drug)
	d, ok := drugIndex[drugKey]
	if !ok {
		available := Available()
		return Result{}, &LookupError{
			Message:   fmt.Sprintf("drug %q not found in database", req.Drug),
			Available: available,
			Widget: genui.NewWarning(
				"Drug Not Found",
				fmt.Sprintf("%q is not in the database. Available drugs: %s", req.Drug, strings.Join(available, ", ")),
				genui.SeverityWarning,
				"Check the drug name.",
			),
		}
	}

	pediatric := req.Pediatric
	if req.AgeYears != nil && *req.AgeYears < 18 {
		pediatric = true
	}

	ind, ok := findIndication(d, req.Indication)
	if !ok {
		keys := Indications(drugKey)
		return Result{}, &LookupError{
			Message:   fmt.Sprintf("indication %q not found for %s", req.Indication, req.Drug),
			Available: keys,
			Widget: genui.NewWarning(
				"Indication Not Found",
				fmt.Sprintf("Indication %q is not defined for %s. Available indications: %s", req.Indication, req.Drug, strings.Join(keys, ", ")),
				genui.SeverityWarning,
				"Check the indication.",
			),
		}
	}

	dosing := ind.Adult
	if pediatric {
		dosing = ind.Pediatric
	}

	calculated := calculateDose(dosing, req.WeightKg, drugKey, pediatric, req.AgeYears)

	warning := dosing.Warning
	if req.Pregnant {
		pw, ok := pregnancyWarnings[drugKey]
		if !ok {
			pw = defaultPregnancyWarning
		}
		warning = strings.TrimSpace(warning + " PREGNANCY: " + pw)
	}

	res := Result{
		DrugName:       d.GenericName,
		Indication:     ind.Key,
		Dose:           dosing.Dose,
		CalculatedDose: calculated,
		Route:          dosing.Route,
		Concentration:  dosing.Concentration,
		Frequency:      dosing.Frequency,
		MaxDose:        dosing.MaxDose,
		Warning:        warning,
	}
	if pediatric {
		res.PediatricNote = fmt.Sprintf("Pediatric dose (%s kg)", formatNumber(req.WeightKg))
	}
	res.Widget = genui.Widget{
		Type: genui.WidgetDrugDoseCard,
		Data: map[string]any{
			"drugName":       d.GenericName,
			"dose":           dosing.Dose,
			"calculatedDose": calculated,
			"route":          dosing.Route,
			"concentration":  dosing.Concentration,
			"frequency":      dosing.Frequency,
			"warning":        warning,
			"maxDose":        dosing.MaxDose,
		},
	}
	return res, nil
}

func findIndication(d *Drug, name string) (Indication, bool) {
	if name == "" {
		return d.Indications[0], true
	}
	key := canonicalKey(name)
	for _, ind := range d.Indications {
		if ind.Key == key {
			return ind, true
		}
	}
	return Indication{}, false
}

// calculateDose applies per-kg dosing capped at the max, or reports the
// fixed dose. Salbutamol pediatric dosing goes by age, not weight.
func calculateDose(dosing Dosing, weightKg float64, drugKey string, pediatric bool, ageYears *float64) string {
	if drugKey == "salbutamol" && pediatric {
		if ageYears != nil && *ageYears > 5 {
			return "5 mg nebulized (>5 years)"
		}
		return "2.5 mg nebulized (<5 years)"
	}

	unit := "mg"
	if drugKey == "sodium_bicarbonate" {
		unit = "mEq"
	}

	if dosing.DosePerKg > 0 {
		raw := dosing.DosePerKg * weightKg
		if dosing.MaxDoseMg > 0 && raw > dosing.MaxDoseMg {
			return fmt.Sprintf("%s %s (max dose, calculated: %.2f %s [%s %s/kg x %s kg])",
				formatNumber(dosing.MaxDoseMg), unit, raw, unit,
				formatNumber(dosing.DosePerKg), unit, formatNumber(weightKg))
		}
		return fmt.Sprintf("%.2f %s (%s %s/kg x %s kg)",
			raw, unit, formatNumber(dosing.DosePerKg), unit, formatNumber(weightKg))
	}

	if dosing.FixedDoseMg > 0 {
		return fmt.Sprintf("%s %s (fixed dose)", formatNumber(dosing.FixedDoseMg), unit)
	}

	if dosing.Dose != "" {
		return dosing.Dose
	}
	return "No dose information available"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

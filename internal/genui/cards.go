package genui

import (
	"encoding/json"
	"fmt"
)

// Typed views over widget payloads. Each card decodes the canonical data bag
// into its own struct; fields the struct does not know stay available in
// Widget.Data for forward compatibility.

type DrugDoseCard struct {
	DrugName       string `json:"drugName"`
	Dose           string `json:"dose"`
	CalculatedDose string `json:"calculatedDose"`
	Route          string `json:"route"`
	Concentration  string `json:"concentration,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
	Warning        string `json:"warning,omitempty"`
	MaxDose        string `json:"maxDose,omitempty"`
}

type TriageCard struct {
	PatientID string         `json:"patientId,omitempty"`
	Category  string         `json:"category"`
	Vitals    map[string]any `json:"vitals,omitempty"`
	Injuries  []string       `json:"injuries,omitempty"`
	Action    string         `json:"action"`
	GCS       *int           `json:"gcs,omitempty"`
}

type ProtocolCard struct {
	ProtocolName string   `json:"protocolName"`
	Steps        []string `json:"steps"`
	CurrentStep  int      `json:"currentStep"`
	Urgency      string   `json:"urgency"`
	Notes        string   `json:"notes,omitempty"`
}

type ECGAnalysisCard struct {
	Rhythm                string   `json:"rhythm"`
	Rate                  *int     `json:"rate,omitempty"`
	Interpretation        string   `json:"interpretation"`
	STChanges             string   `json:"stChanges,omitempty"`
	UrgentAction          string   `json:"urgentAction,omitempty"`
	DifferentialDiagnosis []string `json:"differentialDiagnosis,omitempty"`
}

type VitalSignsCard struct {
	BP       string   `json:"bp,omitempty"`
	HR       *int     `json:"hr,omitempty"`
	RR       *int     `json:"rr,omitempty"`
	SpO2     *int     `json:"spo2,omitempty"`
	Temp     *float64 `json:"temp,omitempty"`
	GCS      *int     `json:"gcs,omitempty"`
	Pain     *int     `json:"pain,omitempty"`
	Trending string   `json:"trending,omitempty"`
}

type PatientFormCard struct {
	Age            *int           `json:"age,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	ChiefComplaint string         `json:"chiefComplaint,omitempty"`
	History        string         `json:"history,omitempty"`
	Vitals         map[string]any `json:"vitals,omitempty"`
	Injuries       []string       `json:"injuries,omitempty"`
	Interventions  []string       `json:"interventions,omitempty"`
	Allergies      []string       `json:"allergies,omitempty"`
}

type TranslationCard struct {
	OriginalText     string           `json:"originalText"`
	OriginalLanguage string           `json:"originalLanguage"`
	TranslatedText   string           `json:"translatedText"`
	TargetLanguage   string           `json:"targetLanguage"`
	MedicalTerms     []map[string]any `json:"medicalTerms,omitempty"`
	Confidence       float64          `json:"confidence,omitempty"`
}

type WarningCard struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Action   string `json:"action,omitempty"`
}

// DecodeCard decodes a widget into the typed struct for its type. The
// returned value is one of the *Card structs above.
func DecodeCard(w Widget) (any, error) {
	var out any
	switch w.Type {
	case WidgetDrugDoseCard:
		out = &DrugDoseCard{}
	case WidgetTriageCard:
		out = &TriageCard{}
	case WidgetProtocolCard:
		out = &ProtocolCard{}
	case WidgetECGAnalysisCard:
		out = &ECGAnalysisCard{}
	case WidgetVitalSignsCard:
		out = &VitalSignsCard{}
	case WidgetPatientFormCard:
		out = &PatientFormCard{}
	case WidgetTranslationCard:
		out = &TranslationCard{}
	case WidgetWarningCard:
		out = &WarningCard{}
	default:
		return nil, fmt.Errorf("genui: unknown widget type %q", w.Type)
	}
	b, err := json.Marshal(w.Data)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("genui: decode %s: %w", w.Type, err)
	}
	return out, nil
}

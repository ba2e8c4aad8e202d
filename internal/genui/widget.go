package genui

// WidgetType identifies a renderable card in the GenUI catalog. The set is
// fixed; the client only knows how to render these.
type WidgetType string

const (
	WidgetDrugDoseCard    WidgetType = "DrugDoseCard"
	WidgetTriageCard      WidgetType = "TriageCard"
	WidgetProtocolCard    WidgetType = "ProtocolCard"
	WidgetECGAnalysisCard WidgetType = "ECGAnalysisCard"
	WidgetVitalSignsCard  WidgetType = "VitalSignsCard"
	WidgetPatientFormCard WidgetType = "PatientFormCard"
	WidgetTranslationCard WidgetType = "TranslationCard"
	WidgetWarningCard     WidgetType = "WarningCard"
)

var knownWidgetTypes = map[WidgetType]bool{
	WidgetDrugDoseCard:    true,
	WidgetTriageCard:      true,
	WidgetProtocolCard:    true,
	WidgetECGAnalysisCard: true,
	WidgetVitalSignsCard:  true,
	WidgetPatientFormCard: true,
	WidgetTranslationCard: true,
	WidgetWarningCard:     true,
}

// Known reports whether t is part of the widget catalog.
func (t WidgetType) Known() bool { return knownWidgetTypes[t] }

// Widget is a typed card payload produced by parsing model output.
type Widget struct {
	Type WidgetType     `json:"type"`
	Data map[string]any `json:"data"`
}

// Message is the canonical decoded form of a model response: optional free
// text plus an ordered list of widgets.
type Message struct {
	Text    string   `json:"text"`
	Widgets []Widget `json:"widgets"`
}

// WarningSeverity values used in WarningCard payloads.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
	SeverityInfo     = "INFO"
)

// NewWarning builds a WarningCard widget.
func NewWarning(title, message, severity, action string) Widget {
	return Widget{
		Type: WidgetWarningCard,
		Data: map[string]any{
			"title":    title,
			"message":  message,
			"severity": severity,
			"action":   action,
		},
	}
}

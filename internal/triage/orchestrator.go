package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"paramedai/internal/llm"
)

// Outcome is the result of an AI-assisted triage classification. Source
// reports whether the category came from the model or from the
// deterministic START fallback.
type Outcome struct {
	Category  Category `json:"category"`
	Reasoning string   `json:"reasoning"`
	Source    string   `json:"source"`
}

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// QuickAssessment is the four-sign rapid field assessment used when a
// full vital set is not available.
type QuickAssessment struct {
	CanWalk         bool   `json:"can_walk"`
	HasBreathing    bool   `json:"has_breathing"`
	HasPulse        bool   `json:"has_pulse"`
	FollowsCommands bool   `json:"follows_commands"`
	Notes           string `json:"notes,omitempty"`
}

// Orchestrator asks an engine for a START classification and falls back
// to the deterministic algorithm when the model is unavailable or its
// answer cannot be parsed.
type Orchestrator struct {
	engine llm.Engine
}

func NewOrchestrator(engine llm.Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

var categoryJSON = regexp.MustCompile(`\{[^}]*"category"[^}]*\}`)

// Classify never returns an error: any failure along the AI path yields
// the deterministic START category with Source set to "fallback".
func (o *Orchestrator) Classify(ctx context.Context, a QuickAssessment) Outcome {
	fallback := QuickSTART(a.CanWalk, a.HasBreathing, a.HasPulse, a.FollowsCommands)

	if o.engine == nil {
		return Outcome{
			Category:  fallback,
			Reasoning: "Classified by START algorithm (AI unavailable)",
			Source:    SourceFallback,
		}
	}

	raw, err := o.engine.Generate(ctx, llm.Request{
		User:      buildTriagePrompt(a),
		MaxTokens: llm.TriageMaxTokens,
	})
	if err != nil {
		return Outcome{
			Category:  fallback,
			Reasoning: "Classified by START algorithm (AI unavailable)",
			Source:    SourceFallback,
		}
	}

	if match := categoryJSON.FindString(raw); match != "" {
		var parsed struct {
			Category  string `json:"category"`
			Reasoning string `json:"reasoning"`
		}
		if json.Unmarshal([]byte(match), &parsed) == nil {
			if cat, ok := ParseCategory(parsed.Category); ok {
				return Outcome{Category: cat, Reasoning: parsed.Reasoning, Source: SourceAI}
			}
		}
	}

	reasoning := strings.TrimSpace(raw)
	if reasoning == "" {
		reasoning = "START algorithm fallback"
	}
	return Outcome{Category: fallback, Reasoning: reasoning, Source: SourceFallback}
}

func buildTriagePrompt(a QuickAssessment) string {
	var b strings.Builder
	b.WriteString("You are an emergency medicine physician performing START field triage.\n")
	b.WriteString("Classify the patient into one category based on their assessment.\n\n")
	b.WriteString("Categories:\n")
	b.WriteString("- GREEN: Minor injuries, can walk (walking wounded)\n")
	b.WriteString("- YELLOW: Delayed, serious but stable\n")
	b.WriteString("- RED: Immediate, life-threatening, needs urgent care\n")
	b.WriteString("- BLACK: Deceased or expectant, no signs of life\n\n")
	b.WriteString(`Return ONLY JSON: {"category":"COLOR","reasoning":"short reason"}` + "\n\n")
	b.WriteString("Patient:\n")
	fmt.Fprintf(&b, "Can walk: %s\n", yesNo(a.CanWalk))
	fmt.Fprintf(&b, "Breathing: %s\n", yesNo(a.HasBreathing))
	fmt.Fprintf(&b, "Radial pulse: %s\n", yesNo(a.HasPulse))
	fmt.Fprintf(&b, "Follows commands: %s", yesNo(a.FollowsCommands))
	if a.Notes != "" {
		fmt.Fprintf(&b, "\nAdditional notes: %s", a.Notes)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

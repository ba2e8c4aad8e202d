// Package triage implements the START and JumpSTART mass-casualty triage
// algorithms, plus an AI-assisted classifier that always degrades to the
// deterministic result.
package triage

import (
	"fmt"
	"strings"

	"paramedai/internal/genui"
)

// Category is a triage color. Exactly four values exist.
type Category string

const (
	Red    Category = "RED"
	Yellow Category = "YELLOW"
	Green  Category = "GREEN"
	Black  Category = "BLACK"
)

// ParseCategory normalizes s to a Category, reporting whether it is one of
// the four valid values.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case Red, Yellow, Green, Black:
		return c, true
	}
	return "", false
}

// QuickSTART is the four-boolean decision table used by the rapid triage
// flow and as the fallback when AI classification fails. Evaluation order is
// fixed and clinically significant: the breathing check precedes the
// pulse/command check.
func QuickSTART(canWalk, hasBreathing, hasPulse, followsCommands bool) Category {
	if canWalk {
		return Green
	}
	if !hasBreathing {
		return Black
	}
	if !hasPulse || !followsCommands {
		return Red
	}
	return Yellow
}

// Assessment carries the full START/JumpSTART input set. Pointer fields are
// tri-state: nil means "not assessed" and the corresponding step is skipped.
type Assessment struct {
	CanWalk         *bool
	Breathing       *bool
	RespiratoryRate *int
	CapillaryRefill *float64
	RadialPulse     *bool
	FollowsCommands *bool
	AVPU            string
	AgeYears        *float64
}

// Result is a full classification outcome.
type Result struct {
	Category  Category
	Label     string
	Priority  int
	Action    string
	Algorithm string
	Step      string
}

// Classify auto-selects the algorithm: children under 8 years use JumpSTART,
// everyone else adult START.
func Classify(a Assessment) Result {
	if a.AgeYears != nil && *a.AgeYears < 8 {
		return ClassifyJumpSTART(a)
	}
	return ClassifySTART(a)
}

// ClassifySTART runs the adult START algorithm. First match wins.
func ClassifySTART(a Assessment) Result {
	if a.CanWalk != nil && *a.CanWalk {
		return Result{Green, "Minor / Ambulatory", 3, "Delayed treatment area", "START", "Walking wounded"}
	}
	if a.Breathing != nil && !*a.Breathing {
		return Result{Black, "Deceased / Expectant", 4, "Morgue area", "START", "Not breathing after airway maneuver"}
	}
	if a.RespiratoryRate != nil && *a.RespiratoryRate > 30 {
		return Result{Red, "Immediate", 1, "Immediate treatment area", "START", "Respiratory rate > 30/min"}
	}
	if (a.RadialPulse != nil && !*a.RadialPulse) || (a.CapillaryRefill != nil && *a.CapillaryRefill > 2.0) {
		return Result{Red, "Immediate", 1, "Immediate treatment area - control bleeding", "START", "Inadequate perfusion"}
	}
	if a.FollowsCommands != nil && !*a.FollowsCommands {
		return Result{Red, "Immediate", 1, "Immediate treatment area", "START", "Cannot follow commands"}
	}
	return Result{Yellow, "Delayed", 2, "Delayed treatment area", "START", "Breathing, adequate perfusion, follows commands, cannot walk"}
}

// ClassifyJumpSTART runs the pediatric JumpSTART algorithm (< 8 years).
// Differences from START: RR thresholds 15-45, rescue breaths before BLACK,
// AVPU instead of command-following.
func ClassifyJumpSTART(a Assessment) Result {
	if a.CanWalk != nil && *a.CanWalk {
		return Result{Green, "Minor", 3, "Minor treatment area", "JumpSTART", "Walking wounded"}
	}
	if a.Breathing != nil && !*a.Breathing {
		return Result{Red, "Immediate", 1, "Give 5 rescue breaths, reassess. If still not breathing -> BLACK", "JumpSTART", "Not breathing - attempt rescue breaths"}
	}
	if a.RespiratoryRate != nil && (*a.RespiratoryRate < 15 || *a.RespiratoryRate > 45) {
		return Result{Red, "Immediate", 1, "Immediate treatment", "JumpSTART",
			fmt.Sprintf("Abnormal RR (%d/min) - normal range 15-45 for pediatric", *a.RespiratoryRate)}
	}
	if (a.RadialPulse != nil && !*a.RadialPulse) || (a.CapillaryRefill != nil && *a.CapillaryRefill > 2.0) {
		return Result{Red, "Immediate", 1, "Immediate - control bleeding", "JumpSTART", "Inadequate perfusion"}
	}
	if avpu := strings.ToUpper(strings.TrimSpace(a.AVPU)); avpu == "P" || avpu == "U" {
		return Result{Red, "Immediate", 1, "Immediate treatment", "JumpSTART", "Altered mental status (AVPU: " + avpu + ")"}
	}
	if a.FollowsCommands != nil && !*a.FollowsCommands {
		return Result{Red, "Immediate", 1, "Immediate treatment", "JumpSTART", "Cannot follow commands"}
	}
	return Result{Yellow, "Delayed", 2, "Delayed treatment area", "JumpSTART", "Breathing, adequate perfusion, appropriate mental status, cannot walk"}
}

// Widget builds the TriageCard payload for a classification result.
func (r Result) Widget(patientID string, vitals map[string]any, injuries []string, gcs *int) genui.Widget {
	if patientID == "" {
		patientID = "Unknown"
	}
	if vitals == nil {
		vitals = map[string]any{}
	}
	if injuries == nil {
		injuries = []string{}
	}
	data := map[string]any{
		"patientId": patientID,
		"category":  string(r.Category),
		"vitals":    vitals,
		"injuries":  injuries,
		"action":    r.Action,
	}
	if gcs != nil {
		data["gcs"] = *gcs
	}
	return genui.Widget{Type: genui.WidgetTriageCard, Data: data}
}

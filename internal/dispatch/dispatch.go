// Package dispatch recommends a triage level, destination hospital and
// response resources for an incoming emergency call. The rules are fully
// deterministic so a recommendation is available even when no model is.
package dispatch

import (
	"strings"
	"time"
)

// Request is an incoming dispatch query.
type Request struct {
	Complaint  string `json:"complaint"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	District   string `json:"district"`
	Additional string `json:"additional,omitempty"`
}

// Result is the dispatch recommendation. PipelineMS is the wall time the
// evaluation took, reported for monitoring.
type Result struct {
	TriageLevel string   `json:"triage_level"`
	Hospital    string   `json:"hospital"`
	Resources   []string `json:"resources"`
	ETAMinutes  int      `json:"eta_minutes"`
	PipelineMS  float64  `json:"pipeline_ms"`
}

type bucket struct {
	name      string
	keywords  []string
	triage    string
	resources []string
}

// Evaluation order matters: the first bucket with a keyword hit wins, so
// the life-threatening categories come first.
var buckets = []bucket{
	{
		name:      "cardiac",
		keywords:  []string{"cardiac arrest", "not breathing", "unresponsive", "chest pain", "heart", "palpitation", "collapsed"},
		triage:    "RED",
		resources: []string{"ALS ambulance", "Cardiac monitor", "Defibrillator"},
	},
	{
		name:      "trauma",
		keywords:  []string{"accident", "crash", "trauma", "bleeding", "stab", "gunshot", "fall", "fracture", "crush"},
		triage:    "RED",
		resources: []string{"ALS ambulance", "Trauma kit", "Spinal board"},
	},
	{
		name:      "respiratory",
		keywords:  []string{"can't breathe", "cannot breathe", "shortness of breath", "asthma", "choking", "wheezing", "dyspnea"},
		triage:    "RED",
		resources: []string{"ALS ambulance", "Oxygen", "Nebulizer"},
	},
	{
		name:      "obstetric",
		keywords:  []string{"labor", "labour", "pregnan", "contraction", "birth", "eclampsia"},
		triage:    "YELLOW",
		resources: []string{"ALS ambulance", "Obstetric kit"},
	},
}

var defaultResult = bucket{
	name:      "general",
	triage:    "YELLOW",
	resources: []string{"BLS ambulance"},
}

type destination struct {
	hospital   string
	etaMinutes int
}

var districts = map[string]destination{
	"kadikoy":  {"Kadikoy State Hospital", 8},
	"besiktas": {"Besiktas Medical Center", 10},
	"sisli":    {"Sisli Etfal Training Hospital", 7},
	"uskudar":  {"Uskudar City Hospital", 9},
	"fatih":    {"Istanbul University Hospital", 12},
	"bakirkoy": {"Bakirkoy Emergency Hospital", 11},
}

var fallbackDestination = destination{"Central Emergency Hospital", 15}

// Evaluate produces a recommendation for the request.
func Evaluate(req Request) Result {
	start := time.Now()

	complaint := strings.ToLower(req.Complaint + " " + req.Additional)
	matched := defaultResult
	for _, b := range buckets {
		if containsAny(complaint, b.keywords) {
			matched = b
			break
		}
	}

	resources := append([]string(nil), matched.resources...)
	if req.Age > 0 && req.Age < 8 {
		resources = append(resources, "Pediatric kit")
	}

	dest, ok := districts[strings.ToLower(strings.TrimSpace(req.District))]
	if !ok {
		dest = fallbackDestination
	}

	return Result{
		TriageLevel: matched.triage,
		Hospital:    dest.hospital,
		Resources:   resources,
		ETAMinutes:  dest.etaMinutes,
		PipelineMS:  float64(time.Since(start).Microseconds()) / 1000.0,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

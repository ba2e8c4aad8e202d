package clinical

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"paramedai/internal/drug"
	"paramedai/internal/genui"
	"paramedai/internal/knowledge"
	"paramedai/internal/llm"
)

// EngineSource yields the engine a request should use. The inference
// router satisfies this; tests use StaticEngine.
type EngineSource interface {
	Engine() llm.Engine
}

type staticSource struct{ e llm.Engine }

func (s staticSource) Engine() llm.Engine { return s.e }

// StaticEngine wraps a fixed engine as an EngineSource.
func StaticEngine(e llm.Engine) EngineSource { return staticSource{e: e} }

// Query is one clinical decision-support request.
type Query struct {
	Message        string         `json:"message"`
	PatientContext map[string]any `json:"patient_context,omitempty"`
	GenUI          bool           `json:"genui_mode"`
}

// Response mirrors the chat payload: free text plus structured widgets.
type Response struct {
	Text       string         `json:"text"`
	Widgets    []genui.Widget `json:"widgets"`
	RAGSources []string       `json:"rag_sources"`
}

// Service runs the decision-support pipeline: deterministic drug-dose
// short-circuit, protocol retrieval, prompt augmentation, inference,
// GenUI extraction.
type Service struct {
	engines   EngineSource
	retriever *knowledge.Retriever
}

func NewService(engines EngineSource, retriever *knowledge.Retriever) *Service {
	return &Service{engines: engines, retriever: retriever}
}

// Process answers a clinical query. Drug dose questions never reach the
// model; everything else goes through retrieval-augmented inference.
func (s *Service) Process(ctx context.Context, q Query) (Response, error) {
	if resp, ok := s.answerDrugQuery(q.Message, q.PatientContext); ok {
		return resp, nil
	}

	ragContext := s.retriever.Retrieve(q.Message)
	sources := contextSources(ragContext)

	raw, err := s.engines.Engine().Generate(ctx, llm.Request{
		System:  SystemPrompt(PromptChat, q.GenUI),
		User:    augmentMessage(q.Message, q.PatientContext),
		Context: ragContext,
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate: %w", err)
	}

	msg := genui.Extract(raw)
	return Response{Text: msg.Text, Widgets: msg.Widgets, RAGSources: sources}, nil
}

// ProcessStream streams raw tokens for a query. Drug dose queries are
// answered in one deterministic chunk.
func (s *Service) ProcessStream(ctx context.Context, q Query, onToken func(string)) error {
	if resp, ok := s.answerDrugQuery(q.Message, q.PatientContext); ok {
		onToken(resp.Text)
		return nil
	}

	ragContext := s.retriever.Retrieve(q.Message)
	_, err := s.engines.Engine().GenerateStream(ctx, llm.Request{
		System:  SystemPrompt(PromptChat, false),
		User:    augmentMessage(q.Message, q.PatientContext),
		Context: ragContext,
	}, onToken)
	if err != nil {
		return fmt.Errorf("generate stream: %w", err)
	}
	return nil
}

// Document turns a voice transcription into a structured prehospital
// report. Failures come back as inline error text, never an error.
func (s *Service) Document(ctx context.Context, transcription string) string {
	raw, err := s.engines.Engine().Generate(ctx, llm.Request{
		User: DocumentationPrompt(transcription),
	})
	if err != nil {
		log.Printf("[clinical] documentation generation failed: %v", err)
		return "Error generating documentation: " + err.Error()
	}
	return strings.TrimSpace(raw)
}

// AnalyzeImage runs vision inference over a medical image and always
// appends a safety WarningCard when the model did not produce one.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, mime, query, typeHint string) (Response, error) {
	prompt := query
	if typeHint != "" {
		prompt = fmt.Sprintf("This is a %s image. %s", typeHint, query)
	}

	raw, err := s.engines.Engine().Generate(ctx, llm.Request{
		System:    SystemPrompt(PromptImage, true),
		User:      prompt,
		Image:     image,
		ImageMIME: mime,
	})
	if err != nil {
		return Response{}, fmt.Errorf("analyze image: %w", err)
	}

	msg := genui.Extract(raw)
	resp := Response{Text: msg.Text, Widgets: msg.Widgets, RAGSources: []string{}}
	if !hasWarningCard(resp.Widgets) {
		resp.Widgets = append(resp.Widgets, genui.NewWarning(
			"AI Analysis Notice",
			"This is a preliminary AI analysis. Specialist physician evaluation is required for a definitive diagnosis.",
			genui.SeverityInfo,
			"Share the results with a physician.",
		))
	}
	return resp, nil
}

func hasWarningCard(widgets []genui.Widget) bool {
	for _, w := range widgets {
		if w.Type == genui.WidgetWarningCard {
			return true
		}
	}
	return false
}

var (
	weightPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|kilo)`)
	agePattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:year|yo|y\.o\.)`)
)

var doseKeywords = []string{
	"dose", "dosage", "mg", "calculate", "how much", "give", "administer",
}

var pediatricKeywords = []string{"child", "pediatr", "infant", "neonatal", "toddler"}

var pregnancyKeywords = []string{"pregnant", "pregnancy", "gravid"}

const (
	defaultAdultWeightKg     = 70.0
	defaultPediatricWeightKg = 20.0
)

// answerDrugQuery detects drug dose questions and answers them from the
// deterministic calculator. It returns ok=false when the message is not
// asking about a known drug's dosing.
func (s *Service) answerDrugQuery(message string, patient map[string]any) (Response, bool) {
	msg := strings.ToLower(message)

	matched := ""
	for _, key := range drug.Available() {
		variants := []string{key, strings.ReplaceAll(key, "_", " "), strings.ReplaceAll(key, "_", "")}
		for _, v := range variants {
			if strings.Contains(msg, v) {
				matched = key
				break
			}
		}
		if matched != "" {
			break
		}
	}
	if matched == "" {
		return Response{}, false
	}

	isDose := false
	for _, kw := range doseKeywords {
		if strings.Contains(msg, kw) {
			isDose = true
			break
		}
	}
	if !isDose {
		return Response{}, false
	}

	req := drug.Request{Drug: matched, WeightKg: defaultAdultWeightKg}
	if patient != nil {
		if w, ok := asFloat(patient["weight_kg"]); ok {
			req.WeightKg = w
		}
		if a, ok := asFloat(patient["age_years"]); ok {
			req.AgeYears = &a
		}
		if p, ok := patient["is_pediatric"].(bool); ok {
			req.Pediatric = p
		}
		if p, ok := patient["is_pregnant"].(bool); ok {
			req.Pregnant = p
		}
		if ind, ok := patient["indication"].(string); ok {
			req.Indication = ind
		}
	}

	if m := weightPattern.FindStringSubmatch(msg); m != nil {
		if w, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.WeightKg = w
		}
	}
	if m := agePattern.FindStringSubmatch(msg); m != nil {
		if a, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.AgeYears = &a
		}
	}
	for _, kw := range pediatricKeywords {
		if strings.Contains(msg, kw) {
			req.Pediatric = true
			if req.WeightKg == defaultAdultWeightKg {
				req.WeightKg = defaultPediatricWeightKg
			}
			break
		}
	}
	for _, kw := range pregnancyKeywords {
		if strings.Contains(msg, kw) {
			req.Pregnant = true
			break
		}
	}
	if req.Indication == "" {
		for _, ind := range drug.Indications(matched) {
			variants := []string{ind, strings.ReplaceAll(ind, "_", " ")}
			for _, v := range variants {
				if strings.Contains(msg, v) {
					req.Indication = ind
					break
				}
			}
			if req.Indication != "" {
				break
			}
		}
	}

	result, err := drug.Calculate(req)
	if err != nil {
		var lerr *drug.LookupError
		if errors.As(err, &lerr) {
			return Response{Text: lerr.Message, Widgets: []genui.Widget{lerr.Widget}, RAGSources: []string{}}, true
		}
		return Response{Text: err.Error(), Widgets: []genui.Widget{}, RAGSources: []string{}}, true
	}

	return Response{
		Text:       fmt.Sprintf("%s - %s: %s", result.DrugName, result.Indication, result.CalculatedDose),
		Widgets:    []genui.Widget{result.Widget},
		RAGSources: []string{},
	}, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// augmentMessage prepends formatted patient context to the user message.
func augmentMessage(message string, patient map[string]any) string {
	if len(patient) == 0 {
		return message
	}
	return fmt.Sprintf("Patient Information:\n%s\n\nQuestion: %s", FormatPatientContext(patient), message)
}

// contextSources pulls the protocol names (first line of each document)
// out of retrieved context, capped at five.
func contextSources(ragContext string) []string {
	if ragContext == "" {
		return []string{}
	}
	var sources []string
	for _, doc := range strings.Split(ragContext, "\n\n---\n\n") {
		if line, _, _ := strings.Cut(doc, "\n"); line != "" {
			sources = append(sources, line)
		}
		if len(sources) == 5 {
			break
		}
	}
	return sources
}

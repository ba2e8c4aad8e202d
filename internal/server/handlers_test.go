package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"paramedai/internal/clinical"
	"paramedai/internal/knowledge"
	"paramedai/internal/llm"
	"paramedai/internal/media"
	"paramedai/internal/patients"
	"paramedai/internal/router"
	"paramedai/internal/stt"
	"paramedai/internal/triage"
)

func newTestHandler(t *testing.T, engine llm.Engine) *Handler {
	t.Helper()
	retriever := knowledge.NewRetriever(knowledge.Builtin())
	store := patients.New(filepath.Join(t.TempDir(), "patients.json"))
	return NewHandler(Deps{
		Clinical:     clinical.NewService(clinical.StaticEngine(engine), retriever),
		Orchestrator: triage.NewOrchestrator(engine),
		Router:       router.New(nil, engine, "", "remote-model", "local-model"),
		Retriever:    retriever,
		Patients:     store,
		Transcriber:  stt.NewFakeTranscriber("Patient is stable, vitals normal."),
		WhisperModel: "whisper-1",
	})
}

func postJSON(t *testing.T, mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestChatReturnsWidgetsAndConversationID(t *testing.T) {
	engine := llm.NewFakeEngine(`{"text": "Start CPR immediately.", "widgets": []}`)
	mux := NewMux(newTestHandler(t, engine))

	rec := postJSON(t, mux, "/api/v1/chat", map[string]any{"message": "patient in cardiac arrest, what do I do"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out chatResponse
	decodeBody(t, rec, &out)
	if out.Text != "Start CPR immediately." {
		t.Errorf("text = %q", out.Text)
	}
	if out.ConversationID == "" {
		t.Error("conversation_id not assigned")
	}
	if out.Widgets == nil || out.RAGSources == nil {
		t.Error("widgets and rag_sources must be arrays, not null")
	}
	if len(out.RAGSources) == 0 {
		t.Error("cardiac arrest query should retrieve protocol sources")
	}
}

func TestChatKeepsClientConversationID(t *testing.T) {
	engine := llm.NewFakeEngine("ok")
	mux := NewMux(newTestHandler(t, engine))

	rec := postJSON(t, mux, "/api/v1/chat", map[string]any{
		"message":         "hello",
		"conversation_id": "conv-42",
	})
	var out chatResponse
	decodeBody(t, rec, &out)
	if out.ConversationID != "conv-42" {
		t.Errorf("conversation_id = %q", out.ConversationID)
	}
}

func TestChatEngineErrorIsInline(t *testing.T) {
	engine := llm.NewFakeEngine("")
	engine.Err = llm.ErrEmptyResponse
	mux := NewMux(newTestHandler(t, engine))

	rec := postJSON(t, mux, "/api/v1/chat", map[string]any{"message": "help"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want inline error with 200", rec.Code)
	}
	var out chatResponse
	decodeBody(t, rec, &out)
	if !strings.HasPrefix(out.Text, "Error: ") {
		t.Errorf("text = %q, want Error: prefix", out.Text)
	}
}

func TestChatMissingMessage(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("ok")))
	rec := postJSON(t, mux, "/api/v1/chat", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatStreamEmitsTokensAndDone(t *testing.T) {
	engine := llm.NewFakeEngine("alpha beta gamma")
	engine.TokenSize = 6
	mux := NewMux(newTestHandler(t, engine))

	rec := postJSON(t, mux, "/api/v1/chat/stream", map[string]any{"message": "status update"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q", cc)
	}

	var tokens []string
	sawDone := false
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var evt sseEvent
		if err := json.Unmarshal([]byte(line[len("data: "):]), &evt); err != nil {
			t.Fatalf("bad event %q: %v", line, err)
		}
		switch evt.Type {
		case "token":
			tokens = append(tokens, evt.Content)
		case "done":
			sawDone = true
		}
	}
	if got := strings.Join(tokens, ""); got != "alpha beta gamma" {
		t.Errorf("joined tokens = %q", got)
	}
	if !sawDone {
		t.Error("missing done event")
	}
}

func TestTriageClassifyEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	canWalk := false
	breathing := true
	rr := 34
	rec := postJSON(t, mux, "/api/v1/triage/classify", map[string]any{
		"patient_id":       "P-7",
		"can_walk":         canWalk,
		"breathing":        breathing,
		"respiratory_rate": rr,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out triageClassifyResponse
	decodeBody(t, rec, &out)
	if out.Category != "RED" {
		t.Errorf("category = %q", out.Category)
	}
	if out.Algorithm != "START" {
		t.Errorf("algorithm = %q", out.Algorithm)
	}
	if out.Widget.Type != "TriageCard" {
		t.Errorf("widget type = %q", out.Widget.Type)
	}
	if out.PatientID != "P-7" {
		t.Errorf("patient_id = %q", out.PatientID)
	}
}

func TestTriageAIClassifyStoresPatient(t *testing.T) {
	engine := llm.NewFakeEngine(`{"category": "RED", "reasoning": "no radial pulse"}`)
	h := newTestHandler(t, engine)
	mux := NewMux(h)

	rec := postJSON(t, mux, "/api/v1/triage/ai-classify", map[string]any{
		"can_walk":         false,
		"has_breathing":    true,
		"has_pulse":        false,
		"follows_commands": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out triage.Outcome
	decodeBody(t, rec, &out)
	if out.Category != triage.Red || out.Source != triage.SourceAI {
		t.Errorf("outcome = %+v", out)
	}

	stored := h.deps.Patients.ListTriaged()
	if len(stored) != 1 {
		t.Fatalf("stored %d triaged patients, want 1", len(stored))
	}
	if stored[0].Category != "RED" {
		t.Errorf("stored category = %q", stored[0].Category)
	}
}

func TestTriageAIClassifyFallbackStillStores(t *testing.T) {
	engine := llm.NewFakeEngine("")
	engine.Err = llm.ErrEmptyResponse
	h := newTestHandler(t, engine)
	mux := NewMux(h)

	rec := postJSON(t, mux, "/api/v1/triage/ai-classify", map[string]any{
		"can_walk": true,
	})
	var out triage.Outcome
	decodeBody(t, rec, &out)
	if out.Category != triage.Green || out.Source != triage.SourceFallback {
		t.Errorf("outcome = %+v", out)
	}
	if len(h.deps.Patients.ListTriaged()) != 1 {
		t.Error("fallback classification must still append a record")
	}
}

func TestDrugCalculateEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/v1/drug/calculate", map[string]any{
		"drug_name": "amiodaron",
		"weight_kg": 80,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]any
	decodeBody(t, rec, &out)
	if out["calculated_dose"] != "300 mg (fixed dose)" {
		t.Errorf("calculated_dose = %v", out["calculated_dose"])
	}
}

func TestDrugCalculateUnknownDrug(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/v1/drug/calculate", map[string]any{
		"drug_name": "unobtainium",
		"weight_kg": 70,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Dose   string `json:"dose"`
		Route  string `json:"route"`
		Widget struct {
			Type string `json:"type"`
		} `json:"widget"`
	}
	decodeBody(t, rec, &out)
	if out.Dose != "N/A" || out.Route != "N/A" {
		t.Errorf("dose = %q route = %q", out.Dose, out.Route)
	}
	if out.Widget.Type != "WarningCard" {
		t.Errorf("widget type = %q", out.Widget.Type)
	}
}

func TestDrugCalculateRejectsBadWeight(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))
	rec := postJSON(t, mux, "/api/v1/drug/calculate", map[string]any{
		"drug_name": "aspirin",
		"weight_kg": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDrugListEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drug/list", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Drugs map[string][]string `json:"drugs"`
		Count int                 `json:"count"`
	}
	decodeBody(t, rec, &out)
	if out.Count != 15 || len(out.Drugs) != 15 {
		t.Errorf("count = %d, drugs = %d", out.Count, len(out.Drugs))
	}
	if len(out.Drugs["adrenalin"]) == 0 {
		t.Error("adrenalin indications missing")
	}
}

func TestPatientRecordsLifecycle(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/v1/patients/records", map[string]any{
		"transcription": "45 year old male, chest pain",
		"documentation": "Chief Complaint: chest pain",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created patients.Record
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("record id not assigned")
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/patients/records/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	mux.ServeHTTP(getRec, get)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}

	list := httptest.NewRequest(http.MethodGet, "/api/v1/patients/records", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, list)
	var listed struct {
		Count int `json:"count"`
	}
	decodeBody(t, listRec, &listed)
	if listed.Count != 1 {
		t.Errorf("count = %d", listed.Count)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/v1/patients/records/"+created.ID, nil)
	delRec := httptest.NewRecorder()
	mux.ServeHTTP(delRec, del)
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", delRec.Code)
	}

	again := httptest.NewRecorder()
	mux.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, "/api/v1/patients/records/"+created.ID, nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", again.Code)
	}
}

func TestTriagedPatientValidation(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/v1/patients/triaged", map[string]any{
		"category": "PURPLE",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid category", rec.Code)
	}

	rec = postJSON(t, mux, "/api/v1/patients/triaged", map[string]any{
		"category": "yellow",
		"notes":    "stable fracture",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var created patients.TriagedPatient
	decodeBody(t, rec, &created)
	if created.Category != "YELLOW" {
		t.Errorf("category = %q, want uppercased", created.Category)
	}
}

func TestTriagedPatientRejectsOutOfRangeGCS(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeEngine("unused"))
	mux := NewMux(h)

	for _, gcs := range []int{-1, 16, 99} {
		rec := postJSON(t, mux, "/api/v1/patients/triaged", map[string]any{
			"category": "RED",
			"gcs":      gcs,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("gcs=%d status = %d, want 400", gcs, rec.Code)
		}
	}
	if len(h.deps.Patients.ListTriaged()) != 0 {
		t.Error("rejected patients must not be stored")
	}

	rec := postJSON(t, mux, "/api/v1/patients/triaged", map[string]any{
		"category": "RED",
		"gcs":      3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("gcs=3 status = %d, want 201", rec.Code)
	}
}

func TestTriageClassifyRejectsOutOfRangeGCS(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/v1/triage/classify", map[string]any{
		"can_walk": true,
		"gcs":      22,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, mux, "/api/v1/triage/classify", map[string]any{
		"can_walk": true,
		"gcs":      15,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("gcs=15 status = %d, want 200", rec.Code)
	}
}

func TestDocumentEndpoint(t *testing.T) {
	engine := llm.NewFakeEngine("Chief Complaint: seizure\nAssessment: postictal")
	mux := NewMux(newTestHandler(t, engine))

	rec := postJSON(t, mux, "/api/v1/patients/document", map[string]any{
		"transcription": "adult female seizure two minutes now postictal",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Documentation string `json:"documentation"`
	}
	decodeBody(t, rec, &out)
	if !strings.Contains(out.Documentation, "Chief Complaint") {
		t.Errorf("documentation = %q", out.Documentation)
	}
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestTranscribeEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	body, ct := multipartBody(t, "audio", "scene.wav", "audio/wav", []byte("RIFFdata"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out stt.Result
	decodeBody(t, rec, &out)
	if out.Text != "Patient is stable, vitals normal." {
		t.Errorf("text = %q", out.Text)
	}
}

func TestTranscribeRejectsUnsupportedMIME(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	body, ct := multipartBody(t, "audio", "notes.pdf", "application/pdf", []byte("%PDF"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTranscribeWithoutBackend(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeEngine("unused"))
	h.deps.Transcriber = nil
	mux := NewMux(h)

	body, ct := multipartBody(t, "audio", "scene.wav", "audio/wav", []byte("RIFF"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAnalyzeImageAlwaysWarns(t *testing.T) {
	engine := llm.NewFakeEngine("Normal sinus rhythm, no acute findings.")
	mux := NewMux(newTestHandler(t, engine))

	body, ct := multipartBody(t, "image", "strip.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47}, map[string]string{
		"image_type": "ecg",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Text    string `json:"text"`
		Widgets []struct {
			Type string `json:"type"`
		} `json:"widgets"`
		ImageType string `json:"image_type"`
	}
	decodeBody(t, rec, &out)
	hasWarning := false
	for _, wdg := range out.Widgets {
		if wdg.Type == "WarningCard" {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Error("image analysis must always include a WarningCard")
	}
	if out.ImageType != "ecg" {
		t.Errorf("image_type = %q", out.ImageType)
	}
}

func TestAnalyzeImageEmptyFile(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	body, ct := multipartBody(t, "image", "strip.png", "image/png", nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeImageInfersTypeFromECGCard(t *testing.T) {
	engine := llm.NewFakeEngine(`{"text": "ST elevation in V1-V4.", "widgets": [{"type": "ECGAnalysisCard", "data": {"rhythm": "sinus tachycardia", "interpretation": "anterior STEMI"}}]}`)
	mux := NewMux(newTestHandler(t, engine))

	body, ct := multipartBody(t, "image", "strip.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/image", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		ImageType string `json:"image_type"`
	}
	decodeBody(t, rec, &out)
	if out.ImageType != "ecg" {
		t.Errorf("image_type = %q, want inferred ecg", out.ImageType)
	}
}

func TestMediaEndpointsWithoutArchive(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	for _, path := range []string{
		"/api/v1/media?kind=audio",
		"/api/v1/media/url?key=audio/2026-02-14/a.wav",
		"/api/v1/media/object?key=audio/2026-02-14/a.wav",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, rec.Code)
		}
	}
}

func TestMediaEndpointValidation(t *testing.T) {
	archive, err := media.New(media.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "paramedai-media",
	})
	if err != nil {
		t.Fatalf("media.New: %v", err)
	}
	h := newTestHandler(t, llm.NewFakeEngine("unused"))
	h.deps.Archive = archive
	mux := NewMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/media?kind=video", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind status = %d, want 400", rec.Code)
	}

	for _, path := range []string{"/api/v1/media/url", "/api/v1/media/object"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s without key status = %d, want 400", path, rec.Code)
		}
	}
}

func TestDispatchEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	rec := postJSON(t, mux, "/api/dispatch", map[string]any{
		"complaint": "crushing chest pain radiating to left arm",
		"district":  "kadikoy",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		TriageLevel string  `json:"triage_level"`
		Hospital    string  `json:"hospital"`
		PipelineMS  float64 `json:"pipeline_ms"`
	}
	decodeBody(t, rec, &out)
	if out.TriageLevel != "RED" {
		t.Errorf("triage_level = %q", out.TriageLevel)
	}
	if out.Hospital == "" {
		t.Error("hospital not set")
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Status       string `json:"status"`
		Model        string `json:"model"`
		RAGDocuments int    `json:"rag_documents"`
	}
	decodeBody(t, rec, &out)
	if out.Status != "ok" {
		t.Errorf("status = %q", out.Status)
	}
	if out.Model != "local-model" {
		t.Errorf("model = %q", out.Model)
	}
	if out.RAGDocuments != 10 {
		t.Errorf("rag_documents = %d", out.RAGDocuments)
	}
}

func TestModelInfoEndpoint(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/model/info", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var out struct {
		ModelName    string   `json:"model_name"`
		Device       string   `json:"device"`
		GenUIWidgets []string `json:"genui_widgets"`
	}
	decodeBody(t, rec, &out)
	if out.ModelName != "local-model" || out.Device != "on-device" {
		t.Errorf("model_name = %q device = %q", out.ModelName, out.Device)
	}
	if len(out.GenUIWidgets) != 8 {
		t.Errorf("genui_widgets = %v", out.GenUIWidgets)
	}
}

func TestCORSPreflight(t *testing.T) {
	mux := NewMux(newTestHandler(t, llm.NewFakeEngine("unused")))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://tablet.example")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://tablet.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Allow-Methods not set")
	}
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/intervu-ai/backend/internal/api"
	"github.com/intervu-ai/backend/internal/rag"
	"github.com/intervu-ai/backend/internal/service"
	"github.com/intervu-ai/backend/internal/session"
	"github.com/intervu-ai/backend/internal/store"
)

type fakePipeline struct{}

func (fakePipeline) Ingest(_ context.Context, data []byte, filename string) (*rag.IngestResult, error) {
	if len(data) == 0 {
		return nil, &rag.IngestionError{Reason: "uploaded file is empty"}
	}
	return &rag.IngestResult{Filename: "ab12cd34_" + filename, Chunks: 1, Retriever: &rag.Retriever{}}, nil
}

func (fakePipeline) Generate(_ context.Context, kind rag.PromptKind, _ rag.Vars, _ *rag.Retriever) (string, error) {
	switch kind {
	case rag.PromptSetup:
		return `"Walk me through your most recent project."`, nil
	case rag.PromptFeedback:
		return "1. Score: 75 2. Strengths: clear structure", nil
	case rag.PromptFollowUp:
		return "What would you change in hindsight?", nil
	}
	return "", nil
}

type fakeStore struct {
	saved []*store.ArchivedInterview
}

func (f *fakeStore) SaveInterview(iv *store.ArchivedInterview) error {
	f.saved = append(f.saved, iv)
	return nil
}

func (f *fakeStore) GetInterview(id string) (*store.ArchivedInterview, error) {
	for _, iv := range f.saved {
		if iv.ID == id {
			return iv, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListInterviews() ([]*store.ArchivedInterview, error) {
	return f.saved, nil
}

func (f *fakeStore) Close() error { return nil }

// failingPipeline rejects every ingest with a fixed error.
type failingPipeline struct {
	ingestErr error
}

func (f failingPipeline) Ingest(context.Context, []byte, string) (*rag.IngestResult, error) {
	return nil, f.ingestErr
}

func (f failingPipeline) Generate(context.Context, rag.PromptKind, rag.Vars, *rag.Retriever) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()
	return newTestServerWith(t, fakePipeline{})
}

func newTestServerWith(t *testing.T, p service.Pipeline) (*httptest.Server, *fakeStore) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	st := &fakeStore{}
	svc := service.NewInterviewService(p, session.NewManager(), st, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(svc, st, logger))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func uploadPDF(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	resp, err := http.Post(url+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestUpload_MissingFilePart(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("other", "value")
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := uploadPDF(t, srv.URL, "resume.docx", []byte("not a pdf"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpload_IngestionFailureIsServerError(t *testing.T) {
	// An upload that passes validation but yields no text is a processing
	// failure, not a client mistake.
	srv, _ := newTestServerWith(t, failingPipeline{
		ingestErr: &rag.IngestionError{Reason: "no text could be extracted"},
	})

	resp := uploadPDF(t, srv.URL, "resume.pdf", []byte("%PDF-1.4"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestUpload_InvalidUploadIsClientError(t *testing.T) {
	srv, _ := newTestServerWith(t, failingPipeline{
		ingestErr: &rag.IngestionError{Reason: "uploaded file is empty", Invalid: true},
	})

	resp := uploadPDF(t, srv.URL, "resume.pdf", []byte("%PDF-1.4"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpload_StartsInterview(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := uploadPDF(t, srv.URL, "resume.pdf", []byte("%PDF-1.4"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	got := decodeBody[api.UploadResponse](t, resp)

	if got.Message != "Resume uploaded and processed successfully." {
		t.Errorf("unexpected message: %q", got.Message)
	}
	if got.Question != "Walk me through your most recent project." {
		t.Errorf("unexpected question: %q", got.Question)
	}
	if got.SessionID == "" {
		t.Error("expected a session id")
	}
	if got.Filename != "ab12cd34_resume.pdf" {
		t.Errorf("unexpected filename: %q", got.Filename)
	}
}

func TestEvaluateAnswer_FieldValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		req  api.EvaluateAnswerRequest
	}{
		{"missing session", api.EvaluateAnswerRequest{Question: "q", Answer: "a"}},
		{"missing question", api.EvaluateAnswerRequest{SessionID: "s", Answer: "a"}},
		{"missing answer", api.EvaluateAnswerRequest{SessionID: "s", Question: "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/evaluate-answer", tt.req)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestStop_UnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/stop", api.StopInterviewRequest{SessionID: "missing"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestInterviewLoop_EndToEnd(t *testing.T) {
	srv, st := newTestServer(t)

	// Upload opens the session and asks the first question.
	uploaded := decodeBody[api.UploadResponse](t, uploadPDF(t, srv.URL, "resume.pdf", []byte("%PDF-1.4")))

	// Answer it.
	evalResp := postJSON(t, srv.URL+"/evaluate-answer", api.EvaluateAnswerRequest{
		SessionID: uploaded.SessionID,
		Question:  uploaded.Question,
		Answer:    "I built a message broker in Go.",
	})
	if evalResp.StatusCode != http.StatusOK {
		t.Fatalf("evaluate: expected 200, got %d", evalResp.StatusCode)
	}
	eval := decodeBody[api.EvaluateAnswerResponse](t, evalResp)

	if !strings.Contains(eval.Feedback, "Score: 75") {
		t.Errorf("unexpected feedback: %q", eval.Feedback)
	}
	if eval.FollowUpQuestion != "What would you change in hindsight?" {
		t.Errorf("unexpected follow-up: %q", eval.FollowUpQuestion)
	}

	// Stop reports the average and archives the transcript.
	stopResp := postJSON(t, srv.URL+"/stop", api.StopInterviewRequest{SessionID: uploaded.SessionID})
	if stopResp.StatusCode != http.StatusOK {
		t.Fatalf("stop: expected 200, got %d", stopResp.StatusCode)
	}
	stopped := decodeBody[api.StopInterviewResponse](t, stopResp)

	want := "The interview has ended. The average score of the candidate is 75.00."
	if stopped.Message != want {
		t.Errorf("got %q, want %q", stopped.Message, want)
	}

	if len(st.saved) != 1 {
		t.Fatalf("expected 1 archived interview, got %d", len(st.saved))
	}

	// The archive endpoints serve the finished interview.
	listResp, err := http.Get(srv.URL + "/interviews")
	if err != nil {
		t.Fatal(err)
	}
	list := decodeBody[[]api.InterviewSummaryResponse](t, listResp)
	if len(list) != 1 || list[0].ID != uploaded.SessionID {
		t.Fatalf("unexpected archive listing: %+v", list)
	}

	detailResp, err := http.Get(srv.URL + "/interviews/" + uploaded.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	detail := decodeBody[api.InterviewDetailResponse](t, detailResp)
	if len(detail.Turns) != 1 {
		t.Fatalf("expected 1 archived turn, got %d", len(detail.Turns))
	}
	if detail.Turns[0].Answer != "I built a message broker in Go." {
		t.Errorf("unexpected archived answer: %q", detail.Turns[0].Answer)
	}
}

func TestGetInterview_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/interviews/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

package rag

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/intervu-ai/backend/internal/id"
	"github.com/intervu-ai/backend/internal/llm"
	"github.com/intervu-ai/backend/internal/worker"
)

// PromptKind selects one of the fixed prompt templates.
type PromptKind string

const (
	PromptSetup    PromptKind = "setup"
	PromptFeedback PromptKind = "feedback"
	PromptFollowUp PromptKind = "followup"
)

// setupQuery is the retrieval query used to pick resume chunks for the
// opening question.
const setupQuery = "Generate an interview question based on the resume"

const (
	embedBatchSize = 16 // chunks per embedding request
	embedWorkers   = 3  // concurrent embedding requests per ingest
)

// Vars carries the substitution slots for one generation call. Setup uses
// Context (filled from retrieval when a retriever is passed); feedback and
// follow-up use Question and Answer.
type Vars struct {
	Context  string
	Question string
	Answer   string
}

// IngestResult is what an upload produces: the collision-proofed stored
// filename and the similarity index over the resume text.
type IngestResult struct {
	Filename  string
	Chunks    int
	Retriever *Retriever
}

// Pipeline wraps document ingestion, chunking, embedding, retrieval, and
// prompted generation behind a narrow interface. Everything long-latency in
// the application funnels through here.
type Pipeline struct {
	generator llm.Generator
	embedder  llm.Embedder
	uploadDir string
	chunkSize int
	overlap   int
	topK      int
	logger    *slog.Logger
}

func NewPipeline(generator llm.Generator, embedder llm.Embedder, uploadDir string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		embedder:  embedder,
		uploadDir: uploadDir,
		chunkSize: defaultChunkSize,
		overlap:   defaultOverlap,
		topK:      3,
		logger:    logger,
	}
}

// Ingest validates and persists an uploaded resume, extracts its text, and
// builds the similarity index. Only PDFs are accepted. The stored file is
// kept for the process lifetime; nothing cleans it up on session stop.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename string) (*IngestResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, &IngestionError{Reason: "only PDF files are allowed", Invalid: true}
	}
	if len(data) == 0 {
		return nil, &IngestionError{Reason: "uploaded file is empty", Invalid: true}
	}

	stored := id.UploadPrefix() + "_" + sanitizeFilename(filename)
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return nil, &IngestionError{Reason: "failed to create upload directory", Wrapped: err}
	}
	if err := os.WriteFile(filepath.Join(p.uploadDir, stored), data, 0o644); err != nil {
		return nil, &IngestionError{Reason: "failed to store upload", Wrapped: err}
	}

	text, err := extractPDFText(data)
	if err != nil {
		return nil, &IngestionError{Reason: "unreadable PDF", Wrapped: err}
	}

	chunks := splitChunks(text, p.chunkSize, p.overlap)
	if len(chunks) == 0 {
		return nil, &IngestionError{Reason: "no text could be extracted"}
	}

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return nil, &IngestionError{Reason: "embedding failed", Wrapped: err}
	}

	p.logger.Info("resume ingested",
		"filename", stored,
		"chunks", len(chunks),
	)

	return &IngestResult{
		Filename:  stored,
		Chunks:    len(chunks),
		Retriever: newRetriever(p.embedder, chunks, vectors),
	}, nil
}

// Generate formats the template selected by kind and calls the model. For
// setup prompts with a retriever, the top-k most similar resume chunks are
// retrieved first and joined into the context slot.
func (p *Pipeline) Generate(ctx context.Context, kind PromptKind, vars Vars, retriever *Retriever) (string, error) {
	var prompt string
	switch kind {
	case PromptSetup:
		resumeContext := vars.Context
		if retriever != nil {
			chunks, err := retriever.Search(ctx, setupQuery, p.topK)
			if err != nil {
				return "", &GenerationError{Reason: "context retrieval failed", Wrapped: err}
			}
			resumeContext = strings.Join(chunks, "\n\n")
		}
		prompt = buildSetupPrompt(resumeContext)
	case PromptFeedback:
		prompt = buildFeedbackPrompt(vars.Question, vars.Answer)
	case PromptFollowUp:
		prompt = buildFollowUpPrompt(vars.Question, vars.Answer)
	default:
		return "", &GenerationError{Reason: fmt.Sprintf("unknown prompt kind %q", kind)}
	}

	out, err := p.generator.Complete(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Reason: "model call failed", Wrapped: err}
	}
	if strings.TrimSpace(out) == "" {
		return "", &GenerationError{Reason: "model returned empty output"}
	}
	return out, nil
}

type embedBatch struct {
	index   int
	vectors [][]float32
	err     error
}

// embedChunks fans chunk batches out on the worker pool and reassembles the
// vectors in chunk order before the index is built.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	var batches [][]string
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}

	pool := worker.NewPool[embedBatch](embedWorkers, len(batches))
	defer pool.Close()

	for i, batch := range batches {
		i, batch := i, batch
		pool.Submit(strconv.Itoa(i), func() embedBatch {
			vectors, err := p.embedder.Embed(ctx, batch)
			return embedBatch{index: i, vectors: vectors, err: err}
		})
	}

	perBatch := make([][][]float32, len(batches))
	for range batches {
		result := <-pool.Results()
		out := result.Output
		if out.err != nil {
			return nil, out.err
		}
		perBatch[out.index] = out.vectors
	}

	vectors := make([][]float32, 0, len(chunks))
	for _, bv := range perBatch {
		vectors = append(vectors, bv...)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d vectors for %d chunks", len(vectors), len(chunks))
	}
	return vectors, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename reduces a client-supplied filename to a safe basename
// so it can be used directly as a path component.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "resume.pdf"
	}
	return name
}

package speech

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var _ Synthesizer = (*Engine)(nil)
var _ Recognizer = (*Engine)(nil)

// Engine speaks and listens through an OpenAI-compatible audio API, using
// whatever playback and capture tools the host system provides.
type Engine struct {
	client        openai.Client
	ttsModel      string
	sttModel      string
	voice         string
	recordSeconds int
	logger        *slog.Logger
}

func NewEngine(baseURL, apiKey, ttsModel, sttModel, voice string, logger *slog.Logger) *Engine {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Engine{
		client:        openai.NewClient(opts...),
		ttsModel:      ttsModel,
		sttModel:      sttModel,
		voice:         voice,
		recordSeconds: 60,
		logger:        logger,
	}
}

// Speak synthesizes the text and starts playback in the background. A
// playback failure is logged, not returned, because audio output is a
// convenience on top of the printed question.
func (e *Engine) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	res, err := e.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(e.ttsModel),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(e.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatWAV,
	})
	if err != nil {
		return err
	}
	defer res.Body.Close()

	clip, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	go func() {
		if err := playWAV(clip); err != nil {
			e.logger.Warn("audio playback failed", "error", err)
		}
	}()
	return nil
}

// recordClip is swapped out in tests; capturing real audio needs a recorder
// binary on PATH.
var recordClip = recordWAV

// Listen records from the default microphone and transcribes the clip. Any
// capture or transcription failure is reported as an empty transcript so
// the caller can ask for a typed answer instead. Context cancellation is
// the exception: it propagates so an interrupted interview exits.
func (e *Engine) Listen(ctx context.Context) (string, error) {
	clip, err := recordClip(ctx, e.recordSeconds)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		e.logger.Warn("audio capture failed", "error", err)
		return "", nil
	}
	if len(clip) == 0 {
		return "", nil
	}

	transcription, err := e.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  bytes.NewReader(clip),
		Model: openai.AudioModel(e.sttModel),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		e.logger.Warn("transcription failed", "error", err)
		return "", nil
	}

	return strings.TrimSpace(transcription.Text), nil
}

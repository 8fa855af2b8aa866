// Command interview runs a mock interview in the terminal against the same
// engine the HTTP server exposes, optionally speaking questions out loud and
// transcribing spoken answers.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"

	"github.com/intervu-ai/backend/internal/infrastructure/config"
	"github.com/intervu-ai/backend/internal/llm"
	"github.com/intervu-ai/backend/internal/rag"
	"github.com/intervu-ai/backend/internal/service"
	"github.com/intervu-ai/backend/internal/session"
	"github.com/intervu-ai/backend/internal/speech"
	"github.com/intervu-ai/backend/internal/store"
)

const (
	actionType  = "Type answer"
	actionSpeak = "Speak answer"
	actionEnd   = "End interview"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	model := llm.NewClient(cfg.LLMURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.EmbeddingModel)
	pipeline := rag.NewPipeline(model, model, cfg.UploadDir, logger)
	interviews := service.NewInterviewService(pipeline, session.NewManager(), db, logger)

	var voice *speech.Engine
	if cfg.SpeechEnabled {
		voice = speech.NewEngine(cfg.LLMURL, cfg.LLMAPIKey, cfg.TTSModel, cfg.STTModel, cfg.TTSVoice, logger)
	}

	if err := run(ctx, interviews, voice); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, interviews *service.InterviewService, voice *speech.Engine) error {
	resumePath, err := askResumePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	fmt.Println("Processing resume...")
	started, err := interviews.StartInterview(ctx, data, resumePath)
	if err != nil {
		return err
	}

	question := started.Question
	for {
		fmt.Printf("\nQuestion: %s\n\n", question)
		say(ctx, voice, question)

		answer, done, err := askAnswer(ctx, voice)
		if err != nil {
			return err
		}
		if done {
			break
		}
		if answer == "" {
			fmt.Println("No answer captured, try again.")
			continue
		}

		fmt.Println("Evaluating...")
		eval, err := interviews.EvaluateAnswer(ctx, started.SessionID, question, answer)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", eval.Feedback)
		question = eval.FollowUpQuestion
	}

	message, err := interviews.StopInterview(ctx, started.SessionID)
	if errors.Is(err, session.ErrNoHistory) {
		fmt.Println("No answers were given, nothing to score.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", message)
	say(ctx, voice, message)
	return nil
}

func askResumePath() (string, error) {
	prompt := promptui.Prompt{
		Label: "Path to resume PDF",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("path must not be empty")
			}
			if _, err := os.Stat(input); err != nil {
				return errors.New("file does not exist")
			}
			return nil
		},
	}
	return prompt.Run()
}

func askAnswer(ctx context.Context, voice *speech.Engine) (answer string, done bool, err error) {
	items := []string{actionType, actionEnd}
	if voice != nil {
		items = []string{actionType, actionSpeak, actionEnd}
	}

	sel := promptui.Select{
		Label: "What next",
		Items: items,
	}
	_, choice, err := sel.Run()
	if err != nil {
		return "", false, err
	}

	switch choice {
	case actionEnd:
		return "", true, nil
	case actionSpeak:
		fmt.Println("Listening... (stop the recorder to finish)")
		transcript, err := voice.Listen(ctx)
		if err != nil {
			return "", false, err
		}
		if transcript != "" {
			fmt.Printf("Heard: %s\n", transcript)
		}
		return transcript, false, nil
	}

	prompt := promptui.Prompt{Label: "Your answer"}
	typed, err := prompt.Run()
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(typed), false, nil
}

func say(ctx context.Context, voice *speech.Engine, text string) {
	if voice == nil {
		return
	}
	if err := voice.Speak(ctx, text); err != nil {
		fmt.Fprintln(os.Stderr, "speech synthesis failed:", err)
	}
}

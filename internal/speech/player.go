package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// playWAV writes the clip to a temp file and hands it to the first audio
// player found on PATH.
func playWAV(clip []byte) error {
	f, err := os.CreateTemp("", "interview-*.wav")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(clip); err != nil {
		f.Close()
		return err
	}
	f.Close()

	players := [][]string{
		{"afplay", f.Name()},
		{"aplay", "-q", f.Name()},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", f.Name()},
	}
	for _, player := range players {
		if _, err := exec.LookPath(player[0]); err != nil {
			continue
		}
		return exec.Command(player[0], player[1:]...).Run()
	}
	return errors.New("no audio player found on PATH")
}

// recordWAV captures up to maxSeconds of microphone audio. The recorder
// process is killed when ctx is cancelled.
func recordWAV(ctx context.Context, maxSeconds int) ([]byte, error) {
	f, err := os.CreateTemp("", "answer-*.wav")
	if err != nil {
		return nil, err
	}
	f.Close()
	defer os.Remove(f.Name())

	recorders := [][]string{
		{"arecord", "-q", "-f", "cd", "-d", strconv.Itoa(maxSeconds), f.Name()},
		{"sox", "-d", f.Name(), "trim", "0", strconv.Itoa(maxSeconds)},
	}
	for _, recorder := range recorders {
		if _, err := exec.LookPath(recorder[0]); err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, recorder[0], recorder[1:]...)
		if err := cmd.Run(); err != nil {
			// A cancelled context kills the recorder; report the
			// cancellation, not the kill.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("recorder %s: %w", recorder[0], err)
		}
		return os.ReadFile(f.Name())
	}
	return nil, errors.New("no audio recorder found on PATH")
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/scheduler"
	"github.com/alexanderramin/thea/internal/transcribe"
	"github.com/spf13/cobra"
)

func newClassifyCmd(a *App) *cobra.Command {
	var audioPath string

	cmd := &cobra.Command{
		Use:   "classify [TEXT...]",
		Short: "Show which incident category a report maps to",
		Long: `Show which incident category a report maps to.

With --audio, the recording is transcribed first. Transcription needs an
API key (THEA_TRANSCRIBE_API_KEY or OPENAI_API_KEY).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if audioPath != "" {
				transcript, err := a.transcribeFile(cmd, audioPath)
				if err != nil {
					return err
				}
				text = transcript
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("nothing to classify; pass text or --audio")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClassification(text, scheduler.Classify(text)))
			return nil
		},
	}

	cmd.Flags().StringVar(&audioPath, "audio", "", "Voice note to transcribe and classify")
	return cmd
}

func (a *App) transcribeFile(cmd *cobra.Command, path string) (string, error) {
	if a.Transcriber == nil {
		return "", errors.New("voice transcription is not configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if a.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Listening")
		defer stop()
	}
	text, err := a.Transcriber.Transcribe(cmd.Context(), f, filepath.Base(path))
	if errors.Is(err, transcribe.ErrEmptyAudio) {
		return "", errors.New("no speech was recognized in the recording")
	}
	return text, err
}

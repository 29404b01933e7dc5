package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mer315/AuralDine/pkg/cli"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Write the preview window of an audio file as WAV",
	Long: `Run the pipeline and write its preview window, the first summary window
peak-scaled to full range, as a 16-bit mono WAV file.

Without -o the file goes to ~/.auraldine/auraldine/previews/<request-id>.wav.

Examples:
  auraldine preview speech.mp3 -o preview.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}
		cfg.Preview = true

		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		res, err := processFile(cmd.Context(), p, args[0])
		if err != nil {
			return err
		}
		s := res.Summary
		if len(s.Preview) == 0 {
			return fmt.Errorf("no preview window produced")
		}

		path := outputFile
		if path == "" {
			paths, err := cli.NewPaths(appName)
			if err != nil {
				return err
			}
			if err := paths.EnsurePreviewDir(); err != nil {
				return err
			}
			path = paths.PreviewPath(s.RequestID)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := s.PreviewFormat().DataChunk(s.Preview).WriteWAV(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		cli.PrintSuccess("Preview written to %s (%s)", path, cli.FormatDuration(s.PreviewFormat().Duration(int64(len(s.Preview)))))
		return nil
	},
}

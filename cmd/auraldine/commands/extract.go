package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mer315/AuralDine/pkg/classify"
	"github.com/Mer315/AuralDine/pkg/cli"
	"github.com/Mer315/AuralDine/pkg/preproc"
)

var (
	extractFast     bool
	extractPreview  bool
	extractClassify bool
)

// extractOutput is the printed result of the extract command.
type extractOutput struct {
	Features   preproc.FeatureVector `json:"features" yaml:"features" msgpack:"features"`
	Summary    *preproc.Summary      `json:"summary" yaml:"summary" msgpack:"summary"`
	Prediction *classify.Prediction  `json:"prediction,omitempty" yaml:"prediction,omitempty" msgpack:"prediction,omitempty"`
}

// Report implements cli.Reporter.
func (o extractOutput) Report() cli.Report {
	s := o.Summary
	duration := time.Duration(0)
	if s.SampleRate > 0 {
		duration = time.Duration(s.OriginalSamples) * time.Second / time.Duration(s.SampleRate)
	}
	degraded := "none"
	if len(s.Degraded) > 0 {
		degraded = strings.Join(s.Degraded, ", ")
	}

	sections := []cli.Section{
		{Label: "Input", Rows: []cli.Row{
			{Key: "source rate", Value: fmt.Sprintf("%d Hz", s.SourceSampleRate)},
			{Key: "working rate", Value: fmt.Sprintf("%d Hz", s.SampleRate)},
			{Key: "duration", Value: cli.FormatDuration(duration)},
		}},
		{Label: "Pipeline", Rows: []cli.Row{
			{Key: "segments", Value: fmt.Sprint(s.NumSegments)},
			{Key: "windows", Value: fmt.Sprint(s.NumWindows)},
			{Key: "degraded", Value: degraded},
		}},
		{Label: "Features", Rows: []cli.Row{
			{Key: "dim", Value: fmt.Sprint(len(o.Features))},
			{Key: "mfcc", Value: cli.FormatVector(o.Features, 3)},
		}},
	}
	if o.Prediction != nil {
		sections = append(sections, cli.Section{Label: "Prediction", Rows: []cli.Row{
			{Key: "label", Value: o.Prediction.Label},
			{Key: "confidence", Value: fmt.Sprintf("%.2f", o.Prediction.Confidence)},
		}})
	}
	if len(s.Preview) > 0 {
		sections[0].Rows = append(sections[0].Rows, cli.Row{Key: "preview", Value: cli.FormatBytes(int64(len(s.Preview)))})
	}

	return cli.Report{
		Title:    "extract",
		Status:   string(s.Mode),
		Sections: sections,
		Footer:   "request " + s.RequestID,
	}
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the utterance feature vector of an audio file",
	Long: `Run the feature pipeline on an audio file and print the result.

The file may be WAV, MP3, WebM or Ogg; anything but WAV is decoded with
ffmpeg. Use "-" to read from stdin.

Examples:
  auraldine extract speech.wav
  auraldine extract speech.mp3 --fast --format table
  cat speech.wav | auraldine extract - --classify --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}
		if extractFast {
			cfg.Fast = true
		}
		if extractPreview {
			cfg.Preview = true
		}

		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		res, err := processFile(cmd.Context(), p, args[0])
		if err != nil {
			return err
		}

		out := extractOutput{Features: res.Features, Summary: res.Summary}
		if extractClassify {
			pred, err := classify.Heuristic{}.Classify(cmd.Context(), res.Features)
			if err != nil {
				return err
			}
			out.Prediction = &pred
		}
		return outputResult(out)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractFast, "fast", false, "skip segmentation and augmentation")
	extractCmd.Flags().BoolVar(&extractPreview, "preview", false, "attach the first window as PCM to the summary")
	extractCmd.Flags().BoolVar(&extractClassify, "classify", false, "add a heuristic label prediction")
}

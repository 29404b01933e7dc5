package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mer315/AuralDine/pkg/cli"
)

// windowsOutput describes the model-ready windows of a file.
type windowsOutput struct {
	SampleRate    int `json:"sample_rate" yaml:"sample_rate" msgpack:"sample_rate"`
	Count         int `json:"count" yaml:"count" msgpack:"count"`
	WindowSamples int `json:"window_samples" yaml:"window_samples" msgpack:"window_samples"`
}

// Report implements cli.Reporter.
func (o windowsOutput) Report() cli.Report {
	return cli.Report{
		Title: "windows",
		Sections: []cli.Section{{Label: "Model input", Rows: []cli.Row{
			{Key: "count", Value: fmt.Sprint(o.Count)},
			{Key: "length", Value: fmt.Sprintf("%d samples", o.WindowSamples)},
			{Key: "rate", Value: fmt.Sprintf("%d Hz", o.SampleRate)},
		}}},
	}
}

var windowsCmd = &cobra.Command{
	Use:   "windows <file>",
	Short: "Show the model-ready windows of an audio file",
	Long: `Condition an audio file at its decoded rate and tile it into one second
windows, the input shape expected by the classifier. Prints the window
count and length.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}

		data, err := cli.ReadInput(args[0])
		if err != nil {
			return err
		}
		sig, err := p.Decode(cmd.Context(), data)
		if err != nil {
			return err
		}

		windows := p.ModelWindows(sig)
		return outputResult(windowsOutput{
			SampleRate:    sig.SampleRate,
			Count:         len(windows),
			WindowSamples: len(windows[0]),
		})
	},
}

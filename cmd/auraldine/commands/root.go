package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mer315/AuralDine/pkg/cli"
	"github.com/Mer315/AuralDine/pkg/preproc"
)

const appName = "auraldine"

var (
	// Global flags
	cfgFile      string
	profileName  string
	outputFile   string
	outputFormat string
	outputJSON   bool
	verbose      bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auraldine",
	Short: "Audio preprocessing and MFCC feature extraction",
	Long: `AuralDine - turn speech recordings into fixed-size MFCC feature vectors.

The pipeline decodes an audio file, resamples it to the working rate,
trims silence, and summarizes it as one utterance-level feature vector.
Full mode segments and augments the audio; fast mode skips both.

Configuration is stored in ~/.auraldine/auraldine/ and supports named
pipeline profiles, similar to kubectl's context management.

Examples:
  # Extract features with the default pipeline
  auraldine extract speech.wav

  # Fast mode, JSON output, with a classifier guess
  auraldine extract speech.mp3 --fast --classify --json

  # Save a profile and use it
  auraldine profile add quick --fast --num-coeffs 20
  auraldine -p quick extract speech.webm --format table
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.auraldine/auraldine/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "pipeline profile to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: yaml, json, msgpack, table")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(profileCmd)
}

func initConfig() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		cli.PrintWarning("%s config: %v", appName, err)
	}
}

// getConfig returns the global configuration
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// pipelineConfig resolves the active profile into a pipeline configuration.
// Without a readable config file the built-in defaults apply.
func pipelineConfig() (preproc.Config, error) {
	if globalConfig == nil {
		if profileName != "" {
			return preproc.Config{}, fmt.Errorf("profile %q: configuration not initialized", profileName)
		}
		return preproc.DefaultConfig(), nil
	}
	p, err := globalConfig.ResolveProfile(profileName)
	if err != nil {
		return preproc.Config{}, err
	}
	slog.Debug("using profile", "profile", p.Name)
	return p.Pipeline, nil
}

// newPipeline builds a pipeline for cfg logging to the default logger.
func newPipeline(cfg preproc.Config) (*preproc.Pipeline, error) {
	return preproc.New(cfg, preproc.WithLogger(slog.Default()))
}

// processFile reads path ("-" for stdin) and runs it through p.
func processFile(ctx context.Context, p *preproc.Pipeline, path string) (*preproc.Result, error) {
	data, err := cli.ReadInput(path)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, data)
}

// format returns the output format selected by --format and --json
func format() (cli.OutputFormat, error) {
	if outputJSON {
		return cli.FormatJSON, nil
	}
	return cli.ParseFormat(outputFormat)
}

// outputResult outputs the result using cli package
func outputResult(result any) error {
	f, err := format()
	if err != nil {
		return err
	}
	return cli.Output(result, cli.OutputOptions{
		Format: f,
		File:   outputFile,
	})
}

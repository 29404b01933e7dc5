package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mer315/AuralDine/pkg/cli"
	"github.com/Mer315/AuralDine/pkg/preproc"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Pipeline profile management",
	Long: `Manage named pipeline profiles.

Profiles are stored in ~/.auraldine/auraldine/config.yaml. Fields left
unset in a profile take the pipeline defaults.`,
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a profile",
	Long: `Add a profile from flags, or from a YAML/JSON file with -f.

Examples:
  auraldine profile add quick --fast --num-coeffs 20
  auraldine profile add lab -f lab-pipeline.yaml -d "lab recordings"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		var pc preproc.Config
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if err := cli.LoadDocument(file, &pc); err != nil {
				return err
			}
		}
		flags := cmd.Flags()
		if flags.Changed("fast") {
			pc.Fast, _ = flags.GetBool("fast")
		}
		if flags.Changed("sample-rate") {
			pc.SampleRate, _ = flags.GetInt("sample-rate")
		}
		if flags.Changed("num-coeffs") {
			pc.NumCoeffs, _ = flags.GetInt("num-coeffs")
		}
		if flags.Changed("segment-seconds") {
			pc.SegmentSeconds, _ = flags.GetFloat64("segment-seconds")
		}
		if flags.Changed("top-db") {
			pc.TopDB, _ = flags.GetFloat64("top-db")
		}
		if flags.Changed("pre-emphasis") {
			v, _ := flags.GetFloat64("pre-emphasis")
			pc.PreEmphasis = preproc.Float(v)
		}
		if flags.Changed("no-augment") {
			off, _ := flags.GetBool("no-augment")
			pc.Augment = preproc.Bool(!off)
		}
		desc, _ := flags.GetString("description")

		if err := cfg.AddProfile(name, &cli.Profile{Description: desc, Pipeline: pc}); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' added successfully", name)
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile '%s'", args[0])
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' deleted", args[0])
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Println("No profiles configured")
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == cfg.CurrentProfile {
				marker = "* "
			}
			line := marker + name
			if d := cfg.Profiles[name].Description; d != "" {
				line += "\t" + d
			}
			fmt.Println(line)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile with defaults applied",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		name := profileName
		if len(args) == 1 {
			name = args[0]
		}
		p, err := cfg.ResolveProfile(name)
		if err != nil {
			return err
		}
		return outputResult(profileView{
			Name:        p.Name,
			Description: p.Description,
			Pipeline:    p.Pipeline.WithDefaults(),
		})
	},
}

// profileView is a resolved profile as printed by "profile show".
type profileView struct {
	Name        string         `json:"name" yaml:"name" msgpack:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	Pipeline    preproc.Config `json:"pipeline" yaml:"pipeline" msgpack:"pipeline"`
}

// Report implements cli.Reporter.
func (v profileView) Report() cli.Report {
	c := v.Pipeline
	return cli.Report{
		Title:  "profile " + v.Name,
		Status: string(c.Mode()),
		Sections: []cli.Section{{Label: "Pipeline", Rows: []cli.Row{
			{Key: "sample_rate", Value: fmt.Sprint(c.SampleRate)},
			{Key: "num_coeffs", Value: fmt.Sprint(c.NumCoeffs)},
			{Key: "segment_seconds", Value: fmt.Sprint(c.SegmentSeconds)},
			{Key: "window_seconds", Value: fmt.Sprint(c.WindowSeconds)},
			{Key: "hop_seconds", Value: fmt.Sprint(c.HopSeconds)},
			{Key: "augment", Value: fmt.Sprint(c.Augmenting())},
			{Key: "top_db", Value: fmt.Sprint(c.TopDB)},
			{Key: "pre_emphasis", Value: fmt.Sprint(c.Emphasis())},
		}}},
		Footer: v.Description,
	}
}

func init() {
	profileAddCmd.Flags().StringP("file", "f", "", "pipeline config file (YAML or JSON)")
	profileAddCmd.Flags().StringP("description", "d", "", "profile description")
	profileAddCmd.Flags().Bool("fast", false, "use fast mode")
	profileAddCmd.Flags().Bool("no-augment", false, "disable augmentation in full mode")
	profileAddCmd.Flags().Int("sample-rate", 0, "working sample rate in Hz")
	profileAddCmd.Flags().Int("num-coeffs", 0, "number of MFCC coefficients")
	profileAddCmd.Flags().Float64("segment-seconds", 0, "segment length in seconds")
	profileAddCmd.Flags().Float64("top-db", 0, "silence trim threshold in dB")
	profileAddCmd.Flags().Float64("pre-emphasis", preproc.DefaultPreEmphasis, "pre-emphasis coefficient (0 disables)")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}

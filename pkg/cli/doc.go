// Package cli provides the shared plumbing of the auraldine command line.
//
// This package includes:
//   - Profile configuration stored in ~/.auraldine/<app>/config.yaml
//   - Output formatting (YAML, JSON, MessagePack, table)
//   - Input and document loading
//
// A config file keeps named pipeline profiles and the current one,
// similar to kubectl contexts:
//
//	current_profile: quick
//	profiles:
//	  quick:
//	    fast: true
//	    num_coeffs: 20
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("auraldine")
//	profile, err := cfg.ResolveProfile("")
//
//	cli.Output(summary, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli

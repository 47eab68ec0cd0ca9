package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootOptions struct {
	output  string
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "canvasctl",
		Short: "Generate and inspect business model canvases",
		Long: `canvasctl runs the canvas inference engine from the command line.

Without --server the engine runs locally and nothing is stored.
With --server the request goes to a running canvas API instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output %q (want %s or %s)", opts.output, outputJSON, outputYAML)
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentFlags().StringVar(&opts.server, "server", "", "canvas API base URL, e.g. http://localhost:8000")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout when --server is set")

	root.AddCommand(
		newGenerateCmd(opts),
		newBlocksCmd(opts),
		newListCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

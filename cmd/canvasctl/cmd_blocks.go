package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	httpx "business-canvas/internal/common/http"
	"business-canvas/internal/models"
	"business-canvas/pkg/registry"
)

func newBlocksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "Print the catalog of the nine canvas blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), opts.output, registry.Catalog())
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List canvases stored by a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.server == "" {
				return fmt.Errorf("list needs --server")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var canvases []models.BusinessCanvas
			env, _, err := httpx.NewClient(opts.server, opts.timeout).
				Envelope(ctx, http.MethodGet, "/api/business/canvas", nil, &canvases)
			if err != nil {
				return err
			}
			if !env.Success {
				return fmt.Errorf("server error (%d): %s", env.StatusCode, env.Message)
			}
			return render(cmd.OutOrStdout(), opts.output, canvases)
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"business-canvas/internal/canvas"
	httpx "business-canvas/internal/common/http"
	"business-canvas/internal/inference"
	"business-canvas/internal/models"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Generate a canvas from a business description",
		Long: `Generate a nine-block business model canvas from a free-form description.

The prompt is the joined arguments. Pass "-" to read it from stdin.`,
		Example: `  canvasctl generate "20-30대 타겟 구독 서비스 앱"
  echo "AI 기반 웹 서비스" | canvasctl generate - -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			req := canvas.GenerateRequest{Prompt: prompt, Name: name}

			var c *models.BusinessCanvas
			if opts.server != "" {
				c, err = generateRemote(cmd.Context(), opts, req)
				if err != nil {
					return err
				}
			} else {
				c = inference.Generate(req.Prompt)
				if req.Name != "" {
					c.Name = req.Name
				}
			}
			return render(cmd.OutOrStdout(), opts.output, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "canvas name (default: timestamp-derived)")
	return cmd
}

func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read prompt from stdin: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return strings.Join(args, " "), nil
}

func generateRemote(ctx context.Context, opts *rootOptions, req canvas.GenerateRequest) (*models.BusinessCanvas, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	client := httpx.NewClient(opts.server, opts.timeout)

	var c models.BusinessCanvas
	env, _, err := client.Envelope(ctx, http.MethodPost, "/api/business/canvas/generate", req, &c)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("server error (%d): %s", env.StatusCode, env.Message)
	}
	return &c, nil
}

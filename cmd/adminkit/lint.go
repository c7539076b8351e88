package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit"
	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <openapi>...",
		Short: "Check x-adminkit-* extensions in OpenAPI documents",
		Long: `Check the x-adminkit-order, x-adminkit-labels and x-adminkit-widget
extensions of OpenAPI documents. Every violation is printed as
"file: location -> message" and the command fails when any is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lint(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) lint(ctx context.Context, out io.Writer, paths []string) error {
	total := 0
	for _, path := range paths {
		src, err := openAPISource(path)
		if err != nil {
			return err
		}
		violations, err := adminkit.LintOpenAPI(ctx, src,
			adminkit.WithLoaderOptions(pkgopenapi.WithHTTPFallback(openAPITimeout)),
			adminkit.WithParserOptions(pkgopenapi.WithValidation(false)),
		)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		for _, v := range violations {
			fmt.Fprintf(out, "%s: %s\n", path, v)
		}
		total += len(violations)
		a.logger.Debug().Str("file", path).Int("violations", len(violations)).Msg("linted")
	}
	if total > 0 {
		return fmt.Errorf("%d extension violation(s)", total)
	}
	return nil
}

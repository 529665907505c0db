package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"landing-gen-go/internal/export"
	"landing-gen-go/internal/model"
)

var (
	genQuery string
	genRole  string
	genOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a landing page once and write page.json/page.html/page.md",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newLandingService(cfg)

		result, err := svc.Generate(cmd.Context(), genQuery, genRole, nil)
		if err != nil {
			return err
		}

		paths, err := writeArtifacts(result.Page, genOut)
		if err != nil {
			return err
		}
		zap.L().Info("page generated",
			zap.String("title", result.Page.Meta.Title),
			zap.Int("sections", len(result.Page.Sections)),
			zap.Strings("files", paths),
		)
		return nil
	},
}

// writeArtifacts 三种格式写入目录
func writeArtifacts(page *model.Page, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "create output dir %s", dir)
	}

	var paths []string
	for _, f := range []export.Format{export.FormatJSON, export.FormatHTML, export.FormatMarkdown} {
		art, err := export.Export(page, f)
		if err != nil {
			return nil, err
		}
		p := filepath.Join(dir, art.Filename)
		if err := os.WriteFile(p, art.Body, 0o644); err != nil {
			return nil, eris.Wrapf(err, "write %s", p)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func init() {
	generateCmd.Flags().StringVar(&genQuery, "q", "", "URL or keywords (required)")
	generateCmd.Flags().StringVar(&genRole, "role", "agent", "agent | loan | profile")
	generateCmd.Flags().StringVar(&genOut, "out", ".", "output directory")
	generateCmd.MarkFlagRequired("q")
	rootCmd.AddCommand(generateCmd)
}

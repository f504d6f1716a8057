package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangang/sitecraft/internal/config"
	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

func newExportCmd(load func() (*config.Config, error)) *cobra.Command {
	var projectID, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project as html, json or react",
		Example: `  server export --project 3f2c... --format html
  server export --project 3f2c... --format react --out site.tsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !export.ValidFormat(format) {
				return fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, format)
			}
			cfg, err := load()
			if err != nil {
				return err
			}

			db, err := models.Open(&cfg.Database, logger.Silent)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			s := store.NewGormStore(db)
			project, err := s.GetProject(cmd.Context(), projectID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("project %s not found", projectID)
			}
			if err != nil {
				return err
			}

			result, err := services.NewExportService(s, export.NewEngine()).Export(cmd.Context(), project, format)
			if err != nil {
				return err
			}

			if out == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Content)
				return err
			}
			if out == "." {
				out = result.FileName
			}
			if err := os.WriteFile(out, []byte(result.Content), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatHTML, "export format (html, json, react)")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file ("." uses the default file name; stdout when empty)`)
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

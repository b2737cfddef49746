// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/repository"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

// validateCmd checks a catalog file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate the catalog file against the catalog schema",
	Long: `Validate checks a catalog file (default --data-file) against the catalog schema
and reports integrity warnings such as duplicate ids or unknown categories.
Warnings do not fail validation unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Treat integrity warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := viper.GetString("data-file")
	if len(args) == 1 {
		path = args[0]
	}
	strict, _ := cmd.Flags().GetBool("strict")

	report, err := validateCatalogFile(afero.NewOsFs(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d software, %d categories\n", path, report.Software, report.Categories)
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}

	if strict && len(report.Warnings) > 0 {
		return fmt.Errorf("%d integrity warning(s)", len(report.Warnings))
	}
	fmt.Fprintln(out, "OK")
	return nil
}

// validateCatalogFile reads a JSON or YAML catalog and validates it.
func validateCatalogFile(fs afero.Fs, path string) (*validator.CatalogReport, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	if repository.IsYAML(filepath.Ext(path)) {
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
	}

	return validator.ValidateCatalogDocument(data)
}

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
	"github.com/heatworks/loadbalancer-heat-templates/templates"
)

// lintCmd checks template documents for structural consistency
var lintCmd = &cobra.Command{
	Use:   "lint [template ...]",
	Short: "checks template documents for structural consistency",
	Long: `lint parses each given template document (a shipped template name or a
JSON/YAML file path) and verifies that every resource and parameter
reference resolves within the document. With no arguments the shipped
templates are checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return lint(args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func lint(args []string) error {
	if len(args) == 0 {
		args = templates.Names()
	}

	var errs []error

	for _, arg := range args {
		tmpl, err := loadTemplate(arg)
		if err != nil {
			logger.Errorw("failed to load template", "template", arg, "error", err)
			errs = append(errs, err)

			continue
		}

		if err := heat.Check(tmpl); err != nil {
			logger.Errorw("template is inconsistent", "template", arg, "error", err)
			errs = append(errs, err)

			continue
		}

		logger.Infow("template is consistent",
			"template", arg,
			"format", tmpl.Format.String(),
			"resources", len(tmpl.Resources),
			"parameters", len(tmpl.Parameters),
		)
	}

	return errors.Join(errs...)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	parser "github.com/haproxytech/config-parser/v4"
	"github.com/haproxytech/config-parser/v4/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.infratographer.com/x/viperx"

	"github.com/heatworks/loadbalancer-heat-templates/internal/dataplaneapi"
	"github.com/heatworks/loadbalancer-heat-templates/internal/haproxy"
	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
)

// previewCmd renders the haproxy configuration a template implies
var previewCmd = &cobra.Command{
	Use:   "preview [template]",
	Short: "renders the haproxy configuration a template implies",
	Long: `preview projects the load-balancer model out of a template document (a
shipped template name or a JSON/YAML file path) and renders it as an
haproxy configuration on top of a base config. Required template
parameters must be supplied with --param. With --check the rendered
config is syntax-checked against a running Data Plane API.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return preview(cmd.Context(), args)
	},
}

const (
	defaultRetryLimit    = 3
	defaultRetryInterval = 1 * time.Second
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.PersistentFlags().String("base-haproxy-config", "", "Base config for haproxy")
	viperx.MustBindFlag(viper.GetViper(), "haproxy.config.base", previewCmd.PersistentFlags().Lookup("base-haproxy-config"))

	previewCmd.PersistentFlags().StringSlice("param", []string{}, "template parameter in name=value form (repeatable)")
	viperx.MustBindFlag(viper.GetViper(), "template.params", previewCmd.PersistentFlags().Lookup("param"))

	previewCmd.PersistentFlags().Bool("check", false, "syntax-check the rendered config against the Data Plane API")
	viperx.MustBindFlag(viper.GetViper(), "dataplane.check", previewCmd.PersistentFlags().Lookup("check"))

	previewCmd.PersistentFlags().String("dataplane-user-name", "haproxy", "DataplaneAPI user name")
	viperx.MustBindFlag(viper.GetViper(), "dataplane.user.name", previewCmd.PersistentFlags().Lookup("dataplane-user-name"))

	previewCmd.PersistentFlags().String("dataplane-user-pwd", "adminpwd", "DataplaneAPI user password")
	viperx.MustBindFlag(viper.GetViper(), "dataplane.user.pwd", previewCmd.PersistentFlags().Lookup("dataplane-user-pwd"))

	previewCmd.PersistentFlags().String("dataplane-url", "http://127.0.0.1:5555/v2/", "DataplaneAPI base url")
	viperx.MustBindFlag(viper.GetViper(), "dataplane.url", previewCmd.PersistentFlags().Lookup("dataplane-url"))

	previewCmd.PersistentFlags().Int("retries", defaultRetryLimit, "Number of attempts to verify connection to DataplaneAPI")
	viperx.MustBindFlag(viper.GetViper(), "retries", previewCmd.PersistentFlags().Lookup("retries"))

	previewCmd.PersistentFlags().Duration("retry-interval", defaultRetryInterval, "Interval between checks")
	viperx.MustBindFlag(viper.GetViper(), "retry-interval", previewCmd.PersistentFlags().Lookup("retry-interval"))
}

func preview(ctx context.Context, args []string) error {
	if err := validatePreviewFlags(args); err != nil {
		return err
	}

	tmpl, err := loadTemplate(args[0])
	if err != nil {
		return err
	}

	params, err := parseParams(viper.GetStringSlice("template.params"))
	if err != nil {
		return err
	}

	if err := heat.Check(tmpl); err != nil {
		return err
	}

	if err := heat.CheckParameters(tmpl, params); err != nil {
		return err
	}

	cfg, err := parser.New(options.Path(viper.GetString("haproxy.config.base")), options.NoNamedDefaultsFrom)
	if err != nil {
		logger.Fatalw("failed to load haproxy base config", "error", err)
	}

	cfg, err = haproxy.Merge(cfg, tmpl, params)
	if err != nil {
		return err
	}

	fmt.Println(cfg.String())

	if viper.GetBool("dataplane.check") {
		client := dataplaneapi.NewClient(viper.GetString("dataplane.url"),
			dataplaneapi.WithLogger(logger),
			dataplaneapi.WithBasicAuth(viper.GetString("dataplane.user.name"), viper.GetString("dataplane.user.pwd")),
		)

		if err := client.WaitForDataPlaneReady(ctx, viper.GetInt("retries"), viper.GetDuration("retry-interval")); err != nil {
			return err
		}

		if err := client.CheckConfig(ctx, cfg.String()); err != nil {
			return err
		}

		logger.Info("rendered config passed the dataplaneapi syntax check")
	}

	return nil
}

// validatePreviewFlags collects the mandatory flag validation
func validatePreviewFlags(args []string) error {
	errs := []error{}

	if len(args) < 1 {
		errs = append(errs, ErrTemplateArgRequired)
	}

	if viper.GetString("haproxy.config.base") == "" {
		errs = append(errs, ErrHAProxyBaseConfigRequired)
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(errs...) //nolint:goerr113
}

// parseParams converts repeated name=value flags into a parameter set
func parseParams(pairs []string) (map[string]string, error) {
	params := map[string]string{}

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrParamFormatInvalid, pair)
		}

		params[name] = value
	}

	return params, nil
}

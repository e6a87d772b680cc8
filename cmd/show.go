package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
	"github.com/heatworks/loadbalancer-heat-templates/templates"
)

// showCmd prints the declared parameters and load-balancer model of a template
var showCmd = &cobra.Command{
	Use:   "show [template]",
	Short: "prints the parameter table and load-balancer model of a template",
	Long: `show prints the declared parameters and the load-balancer resources of a
template document (a shipped template name or a JSON/YAML file path).
With no arguments the shipped template names are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range templates.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		}

		return show(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func show(w io.Writer, arg string) error {
	tmpl, err := loadTemplate(arg)
	if err != nil {
		return err
	}

	model, err := tmpl.LBModel()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "template: %s (%s %s)\n", arg, tmpl.Format, tmpl.Version)

	if tmpl.Description != "" {
		fmt.Fprintf(w, "description: %s\n", tmpl.Description)
	}

	fmt.Fprintln(w, "\nparameters:")

	for _, name := range parameterNames(tmpl) {
		p := tmpl.Parameters[name]
		if p.HasDefault {
			fmt.Fprintf(w, "  %s (%s, default %v) %s\n", p.Name, p.Type, p.Default, p.Description)
		} else {
			fmt.Fprintf(w, "  %s (%s, required) %s\n", p.Name, p.Type, p.Description)
		}
	}

	fmt.Fprintln(w, "\nload balancers:")

	for _, lb := range model.LoadBalancers {
		fmt.Fprintf(w, "  %s vip=%s subnet=%s", lb.Name, valueString(lb.VIPAddress), valueString(lb.Subnet))

		if lb.Provider != "" {
			fmt.Fprintf(w, " provider=%s", lb.Provider)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nlisteners:")

	for _, l := range model.Listeners {
		fmt.Fprintf(w, "  %s %s port=%s loadbalancer=%s\n", l.Name, l.Protocol, valueString(l.Port), l.LoadBalancer)
	}

	fmt.Fprintln(w, "\npools:")

	for _, p := range model.Pools {
		fmt.Fprintf(w, "  %s %s %s listener=%s", p.Name, p.Algorithm, p.Protocol, p.Listener)

		if p.Persistence != "" {
			fmt.Fprintf(w, " persistence=%s", p.Persistence)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nhealth monitors:")

	for _, m := range model.Monitors {
		fmt.Fprintf(w, "  %s %s delay=%d timeout=%d retries=%d pool=%s\n", m.Name, m.Type, m.Delay, m.Timeout, m.MaxRetries, m.Pool)
	}

	if len(model.Members) > 0 {
		fmt.Fprintln(w, "\npool members:")

		for _, m := range model.Members {
			fmt.Fprintf(w, "  %s addr=%s port=%s weight=%d pool=%s\n", m.Name, valueString(m.Address), valueString(m.Port), m.Weight, m.Pool)
		}
	}

	return nil
}

func parameterNames(tmpl *heat.Template) []string {
	names := make([]string, 0, len(tmpl.Parameters))
	for name := range tmpl.Parameters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// valueString renders a property value, showing parameter references by name
func valueString(v heat.Value) string {
	if v.IsParam() {
		return "{" + v.Param + "}"
	}

	return fmt.Sprintf("%v", v.Literal)
}

// Command pipevar renders and validates variable templates from the
// command line. Variable sources mirror the library's priority order:
// process environment < profile file env < --set < profile file vars
// < --var.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/randalmurphal/pipevar/internal/profile"
	"github.com/randalmurphal/pipevar/pkg/pipevar"
	"github.com/randalmurphal/pipevar/pkg/pipevar/config"
	"github.com/randalmurphal/pipevar/pkg/pipevar/formatter"
	"github.com/randalmurphal/pipevar/pkg/pipevar/resolve"
)

func main() {
	app := &cli.Command{
		Name:  "pipevar",
		Usage: "variable substitution for pipeline templates",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "profile YAML file providing vars and env sources",
			},
			&cli.StringFlag{
				Name:  "profile-name",
				Usage: "named profile inside the profile file",
			},
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "CLI variable as name=value (highest priority, repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "set-source variable as name=value (repeatable)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "engine settings file (YAML or JSON)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "substitute variables into a template",
				ArgsUsage: "[template]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "context",
						Aliases: []string{"c"},
						Value:   "text",
						Usage:   "output context: text, sql, or ast",
					},
				},
				Action: renderAction,
			},
			{
				Name:      "validate",
				Usage:     "report missing variables and malformed defaults",
				ArgsUsage: "[template]",
				Action:    validateAction,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	engine, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	fc, err := formatter.ParseContext(cmd.String("context"))
	if err != nil {
		return err
	}

	text, err := templateArg(cmd)
	if err != nil {
		return err
	}

	out, err := engine.SubstituteString(ctx, text, fc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Writer, out)
	return nil
}

func validateAction(_ context.Context, cmd *cli.Command) error {
	engine, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	text, err := templateArg(cmd)
	if err != nil {
		return err
	}

	res := engine.Validate(text)
	if res.Valid {
		fmt.Fprintln(cmd.Writer, "valid")
		return nil
	}

	for _, name := range res.MissingVariables {
		fmt.Fprintf(cmd.Writer, "missing: %s\n", name)
		for _, loc := range res.ContextLocations[name] {
			fmt.Fprintf(cmd.Writer, "  %s\n", loc)
		}
	}
	for _, d := range res.InvalidDefaults {
		fmt.Fprintf(cmd.Writer, "invalid default: %s\n", d)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.Writer, "warning: %s\n", w)
	}
	return cli.Exit("", 1)
}

// buildEngine assembles the variable sources and engine settings from
// the global flags.
func buildEngine(cmd *cli.Command) (*pipevar.Engine, error) {
	cfg := resolve.VariableConfig{}

	if path := cmd.String("profile"); path != "" {
		loaded, err := profile.Load(path, cmd.String("profile-name"))
		if err != nil {
			return nil, err
		}
		cfg.Profile = loaded.Profile
		cfg.DeclaredEnv = loaded.DeclaredEnv
	}

	var err error
	if cfg.CLI, err = parseAssignments(cmd.StringSlice("var")); err != nil {
		return nil, err
	}
	if cfg.Set, err = parseAssignments(cmd.StringSlice("set")); err != nil {
		return nil, err
	}

	opts := []pipevar.Option{}
	if path := cmd.String("config"); path != "" {
		c, err := config.FromFile(path)
		if err != nil {
			return nil, err
		}
		settings, err := c.Settings()
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipevar.WithSettings(settings))
	}

	return pipevar.New(cfg, opts...), nil
}

// parseAssignments turns repeated name=value flags into a source map.
func parseAssignments(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed assignment %q, want name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}

// templateArg returns the template from the first positional argument,
// or stdin when no argument is given.
func templateArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		return cmd.Args().First(), nil
	}
	data, err := io.ReadAll(cmd.Reader)
	if err != nil {
		return "", fmt.Errorf("read template from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

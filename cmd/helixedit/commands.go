package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/helixedit/internal/app"
	"github.com/dshills/helixedit/internal/config/watcher"
)

func newNewCmd(flags *globalFlags) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Save an empty or imported design as a new revision",
		Example: `  helixedit new -d tile
  helixedit new -d tile --from tile.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				label := "new"
				if from != "" {
					if err := a.Import(from); err != nil {
						return err
					}
					label = "import " + from
				}
				rev, err := a.Save(ctx, label)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s revision %d\n", a.Name(), rev.Number)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "import a design from a JSON file")
	return cmd
}

type editFlags struct {
	message  string
	dryRun   bool
	revision int
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.message, "message", "m", "", "revision label")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "print the result without saving it")
	cmd.Flags().IntVarP(&f.revision, "revision", "r", 0, "start from this revision instead of the newest")
}

func open(ctx context.Context, a *app.Application, revision int) error {
	if revision > 0 {
		_, err := a.OpenRevision(ctx, revision)
		return err
	}
	_, err := a.Open(ctx)
	return err
}

// finishEdit saves the edited design, or prints it in a dry run.
func finishEdit(ctx context.Context, cmd *cobra.Command, a *app.Application, f *editFlags, label string) error {
	if f.dryRun {
		return writeYAML(cmd.OutOrStdout(), a.Inspect())
	}
	if f.message != "" {
		label = f.message
	}
	rev, err := a.Save(ctx, label)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s revision %d: %s\n", a.Name(), rev.Number, label)
	return nil
}

func newApplyCmd(flags *globalFlags) *cobra.Command {
	f := &editFlags{}
	cmd := &cobra.Command{
		Use:   "apply <operations.yaml>...",
		Short: "Apply operation files to the design",
		Long: `Apply decodes each file as a list of operations and applies them in
order. Each file is one undo step and fails as a whole: if an operation is
rejected, nothing from that file is kept and nothing is saved.`,
		Example: `  helixedit apply -d tile staples.yaml
  helixedit apply -n cut.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				if err := open(ctx, a, f.revision); err != nil {
					return err
				}
				total := 0
				for _, path := range args {
					n, err := a.ApplyFile(ctx, path)
					if err != nil {
						return err
					}
					total += n
				}
				return finishEdit(ctx, cmd, a, f, fmt.Sprintf("apply %d operations", total))
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newScriptCmd(flags *globalFlags) *cobra.Command {
	f := &editFlags{}
	cmd := &cobra.Command{
		Use:     "script <file.lua>",
		Short:   "Run a Lua script on the design",
		Example: `  helixedit script -d tile staple_breaks.lua`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				if err := open(ctx, a, f.revision); err != nil {
					return err
				}
				res, err := a.RunScript(ctx, args[0])
				if err != nil {
					return err
				}
				return finishEdit(ctx, cmd, a, f, fmt.Sprintf("script %s (%d edits)", args[0], res.Applied))
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var (
		revision int
		format   string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarise the design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				if err := open(ctx, a, revision); err != nil {
					return err
				}
				switch format {
				case "yaml":
					return writeYAML(cmd.OutOrStdout(), a.Inspect())
				case "json":
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(a.Inspect())
				default:
					return fmt.Errorf("unknown format %q", format)
				}
			})
		},
	}
	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to inspect")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func newRevisionsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "revisions",
		Short:   "List the saved revisions of the design",
		Aliases: []string{"log"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				revs, err := a.Revisions(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "REV\tCREATED\tLABEL")
				for _, r := range revs {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Number, r.CreatedAt.Local().Format(time.DateTime), r.Label)
				}
				return tw.Flush()
			})
		},
	}
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var revision int
	cmd := &cobra.Command{
		Use:   "export <out.json>",
		Short: "Write the design as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				if err := open(ctx, a, revision); err != nil {
					return err
				}
				return a.Export(args[0])
			})
		},
	}
	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to export")
	return cmd
}

func newBackupCmd(flags *globalFlags) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the newest revision, or list backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				if list {
					infos, err := a.Backups(ctx)
					if err != nil {
						return err
					}
					for _, info := range infos {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", info.Key, info.Size)
					}
					return nil
				}
				if _, err := a.Open(ctx); err != nil {
					return err
				}
				info, err := a.Backup(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), info.Key)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list backups")
	return cmd
}

func newRestoreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Save the newest backup as a new revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				info, err := a.Restore(ctx)
				if err != nil {
					return err
				}
				rev, err := a.Save(ctx, "restore "+info.Key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s revision %d\n", a.Name(), rev.Number)
				return nil
			})
		},
	}
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.lua>",
		Short: "Rerun a script on the newest revision whenever it changes",
		Long: `Watch runs the script once, then again each time the file is written,
always starting from the newest saved revision. Results are printed and
never saved. The configuration file is watched too: log level and undo
history size changes apply without a restart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.Application) error {
				out := cmd.OutOrStdout()
				rerun := func(string) {
					if err := dryRun(ctx, out, a, args[0]); err != nil {
						fmt.Fprintf(out, "error: %v\n", err)
					}
				}
				w, err := watcher.New(args[0])
				if err != nil {
					return err
				}
				defer w.Close()
				w.OnChange(rerun)

				go func() {
					if err := a.Watch(ctx); err != nil && ctx.Err() == nil {
						a.Logger().Warn("config watch stopped", "err", err)
					}
				}()
				rerun(args[0])
				if err := w.Run(ctx); err != nil && ctx.Err() == nil {
					return err
				}
				return nil
			})
		},
	}
	return cmd
}

func dryRun(ctx context.Context, out io.Writer, a *app.Application, path string) error {
	if _, err := a.Open(ctx); err != nil {
		return err
	}
	if _, err := a.RunScript(ctx, path); err != nil {
		return err
	}
	return writeYAML(out, a.Inspect())
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

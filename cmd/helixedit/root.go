package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/helixedit/internal/app"
)

type globalFlags struct {
	config string
	design string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "helixedit",
		Short: "Edit the strand topology of DNA origami designs",
		Long: `helixedit applies editing operations to DNA origami designs and keeps
every saved version in a revision store.

Operations come from YAML files (apply) or Lua scripts (script). Each
command works on the newest revision of the design named by --design and
saves its result as a new revision.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "helixedit.toml", "configuration file (toml or yaml)")
	root.PersistentFlags().StringVarP(&flags.design, "design", "d", app.DefaultName, "design name")

	root.AddCommand(
		newNewCmd(flags),
		newApplyCmd(flags),
		newScriptCmd(flags),
		newInspectCmd(flags),
		newRevisionsCmd(flags),
		newExportCmd(flags),
		newBackupCmd(flags),
		newRestoreCmd(flags),
		newWatchCmd(flags),
	)
	return root
}

// withApp opens the application for cmd, runs fn and closes it.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app.Application) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, app.Options{
		ConfigPath: flags.config,
		Name:       flags.design,
		Out:        cmd.OutOrStdout(),
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}

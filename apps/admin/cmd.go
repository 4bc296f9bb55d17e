package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/academia/apps/shared"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/dashboard"
	academicsvc "github.com/trezcool/academia/services/academic"
)

var (
	openStoreFunc = shared.OpenStore // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	client *academicsvc.Client
	ctrl   *dashboard.Controller
	out    io.Writer
}

func newCommandLine(conf *core.Config, logger core.Logger, client *academicsvc.Client, out io.Writer) *commandLine {
	return &commandLine{
		conf:   conf,
		logger: logger,
		client: client,
		ctrl:   dashboard.NewController(client, logger, conf),
		out:    out,
	}
}

// run executes the command of args (args[0] is the program name).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(context.Background())
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         cli.conf.AppName + " administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.migrateCmd(),
		cli.seedCmd(),
		cli.resetCmd(),
		cli.dashboardCmd(),
		cli.studentsCmd(),
		cli.coursesCmd(),
		cli.rosterCmd(),
		cli.gradesCmd(),
		cli.reportCmd(),
	)
	return root
}

// load fetches the dashboard data.
func (cli *commandLine) load(ctx context.Context) error {
	return errors.Wrap(cli.ctrl.Load(ctx), "loading dashboard")
}

// groupCmd returns a command only grouping its subcommands.
func groupCmd(use, short string, subs ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	cmd.AddCommand(subs...)
	return cmd
}

func (cli *commandLine) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Empty the configured database and load the seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStoreFunc(ctx, cli.conf, cli.logger)
			if err != nil {
				return errors.Wrap(err, "opening store")
			}
			defer store.Close()

			if err = store.Reset(ctx); err != nil {
				return err
			}
			cli.printf("%s database seeded\n", cli.conf.Database.Engine)
			return nil
		},
	}
}

func (cli *commandLine) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the seed data of the running API's store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.client.Reset(cmd.Context()); err != nil {
				return err
			}
			cli.printf("store reset\n")
			return nil
		},
	}
}

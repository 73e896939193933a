package cli

import (
	"io"

	"github.com/dmitrijs2005/taskhub/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds taskctl. cfg already holds defaults, environment
// and file values; flags override them before any command runs.
func NewRootCommand(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Command-line client for the taskhub API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			built, err := newApp(cfg, in, out)
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newWhoamiCommand(app),
		newTasksCommand(app),
		newLogoutCommand(app),
	)
	return root
}

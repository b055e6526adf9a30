package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Create the document store with the full schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}

			if err := repo.Migrate(context.Background()); err != nil {
				return err
			}

			// a load repairs rows left without tags or status
			docs, err := repo.Load(context.Background())
			if err != nil {
				return err
			}

			logrus.Infof("%s store ready with %d documents", cfg.Store.Driver, len(docs))
			color.Green("migrated")
			return nil
		},
	}

	return command
}

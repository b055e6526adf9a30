package cmd

import (
	"context"
	"os"

	"github.com/emrgen/doctrack"
	"github.com/emrgen/doctrack/internal/config"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/spf13/cobra"
)

var (
	configFile string
	serverURL  string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doctrack",
	Short: "document metadata tracker",
	Example: `doctrack add -n report.pdf -p /docs/report.pdf -c Administrative -d "financial budget 2024"
doctrack list -c Project -t planning
doctrack status -i 3 -s Archived
doctrack delete -i 3 -i 4
doctrack retag -i 2
doctrack import -f seed.csv
doctrack stats -c Personnel
doctrack serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configFile != "" {
			cfg, err = config.LoadConfigFile(configFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return err
		}

		return config.SetupLogger(cfg.Log)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./doctrack.yml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "send commands to a running server, e.g. http://localhost:4001")

	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// documents is implemented by the local repository and the server client
type documents interface {
	Query(ctx context.Context, filter repository.Filter) ([]*model.Document, error)
	Add(ctx context.Context, req repository.AddRequest) ([]*model.Document, error)
	Import(ctx context.Context, reqs []repository.AddRequest) (int, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteMany(ctx context.Context, ids []int64) (bool, int, error)
	RegenerateTags(ctx context.Context, ids []int64) (int, error)
}

var (
	_ documents = (*repository.Repository)(nil)
	_ documents = (*doctrack.Client)(nil)
)

// openDocuments returns the server client when --server is set and the
// configured local repository otherwise.
func openDocuments() (documents, error) {
	if serverURL != "" {
		return doctrack.NewClient(serverURL), nil
	}

	return openRepository()
}

func openRepository() (*repository.Repository, error) {
	return repository.Open(cfg)
}

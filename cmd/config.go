package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/emrgen/doctrack/internal/config"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "config commands",
}

func init() {
	configCmd.AddCommand(showConfigCmd())
	configCmd.AddCommand(writeConfigCmd())
}

func showConfigCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "show",
		Short: "show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			settings := cfg.Settings()
			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Value"})
			for _, key := range keys {
				value := fmt.Sprint(settings[key])
				if value != "" && (strings.HasSuffix(key, "password") || key == "store.dsn") {
					value = "****"
				}
				table.Append([]string{key, value})
			}
			table.Render()
		},
	}

	return command
}

// saves the effective configuration so later runs pick it up
func writeConfigCmd() *cobra.Command {
	var path string

	command := &cobra.Command{
		Use:     "write",
		Short:   "write the effective configuration to a file",
		Example: "doctrack config write -o ./doctrack.yml",
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.WriteConfigFile(cfg, path); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}

			printField("Written", path)
		},
	}

	command.Flags().StringVarP(&path, "output", "o", "doctrack.yml", "config file to write")

	return command
}

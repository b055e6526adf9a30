package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emrgen/doctrack/internal/compress"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/store"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addDocCmd())
	rootCmd.AddCommand(listDocCmd())
	rootCmd.AddCommand(updateStatusCmd())
	rootCmd.AddCommand(deleteDocCmd())
	rootCmd.AddCommand(retagDocCmd())
	rootCmd.AddCommand(importDocCmd())
}

func addDocCmd() *cobra.Command {
	var req repository.AddRequest
	var uploadDate string

	var required = []string{"name", "path"}

	command := &cobra.Command{
		Use:     "add",
		Short:   "add a document",
		Long:    `add a document, tags and status are generated when not given`,
		Example: `doctrack add -n <filename> -p <filepath> -c <category> -d <description> -t <tag,tag>`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			if uploadDate != "" {
				date, ok := model.ParseTimestamp(uploadDate)
				if !ok {
					color.Red("invalid upload date: %s", uploadDate)
					return
				}
				req.UploadDate = date
			}

			docs, ok := withDocuments(func(ctx context.Context, d documents) ([]*model.Document, error) {
				return d.Add(ctx, req)
			})
			if !ok || len(docs) == 0 {
				return
			}

			doc := docs[len(docs)-1]
			printField("ID", strconv.FormatInt(doc.ID, 10))
			printField("Category", string(doc.Category))
			printField("Tags", doc.Tags)
			printField("Status", string(doc.Status))
		},
	}

	command.Flags().StringVarP(&req.Filename, "name", "n", "", "file name (required)")
	command.Flags().StringVarP(&req.Filepath, "path", "p", "", "file path (required)")
	command.Flags().StringVarP(&req.Category, "category", "c", "", "Administrative, Project, Personnel or Other")
	command.Flags().StringVarP(&req.Tags, "tags", "t", "", "comma separated tags")
	command.Flags().StringVarP(&req.Description, "description", "d", "", "description of the document")
	command.Flags().StringVar(&uploadDate, "date", "", "upload date, the current time when empty")

	command.Flags().SortFlags = false

	return command
}

func listDocCmd() *cobra.Command {
	var filter repository.Filter

	command := &cobra.Command{
		Use:     "list",
		Short:   "list documents",
		Example: "doctrack list -c <category> -t <tag> -s <status>",
		Run: func(cmd *cobra.Command, args []string) {
			docs, ok := withDocuments(func(ctx context.Context, d documents) ([]*model.Document, error) {
				return d.Query(ctx, filter)
			})
			if !ok {
				return
			}

			if len(docs) == 0 {
				color.Yellow("no documents")
				return
			}

			printDocuments(docs)
		},
	}

	command.Flags().StringVarP(&filter.Category, "category", "c", "", "exact category")
	command.Flags().StringVarP(&filter.Tag, "tag", "t", "", "tag substring, case insensitive")
	command.Flags().StringVarP(&filter.Status, "status", "s", "", "exact status")

	command.Flags().SortFlags = false

	return command
}

func updateStatusCmd() *cobra.Command {
	var id int64
	var status string

	var required = []string{"id", "status"}

	command := &cobra.Command{
		Use:     "status",
		Short:   "change the status of a document",
		Example: "doctrack status -i <id> -s <Active|Archived|Deleted>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			d, err := openDocuments()
			if err != nil {
				logrus.Error(err)
				return
			}

			updated, err := d.UpdateStatus(context.Background(), id, status)
			if err != nil {
				color.Red("%v", err)
				return
			}
			if !updated {
				color.Yellow("document with id %d not found", id)
				return
			}

			color.Green("document %d is now %s", id, status)
		},
	}

	command.Flags().Int64VarP(&id, "id", "i", 0, "document id (required)")
	command.Flags().StringVarP(&status, "status", "s", "", "new status (required)")

	return command
}

func deleteDocCmd() *cobra.Command {
	var ids []int64

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete documents",
		Example: "doctrack delete -i <id> -i <id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			d, err := openDocuments()
			if err != nil {
				logrus.Error(err)
				return
			}

			deleted, n, err := d.DeleteMany(context.Background(), ids)
			if err != nil {
				color.Red("%v", err)
				return
			}
			if !deleted {
				color.Yellow("no valid documents to delete")
				return
			}

			color.Green("%d documents deleted", n)
		},
	}

	command.Flags().Int64SliceVarP(&ids, "id", "i", nil, "document ids (required)")

	return command
}

func retagDocCmd() *cobra.Command {
	var ids []int64

	command := &cobra.Command{
		Use:     "retag",
		Short:   "regenerate tags",
		Long:    `regenerate the tags of the given documents, or of every document when no id is given`,
		Example: "doctrack retag -i <id>",
		Run: func(cmd *cobra.Command, args []string) {
			d, err := openDocuments()
			if err != nil {
				logrus.Error(err)
				return
			}

			n, err := d.RegenerateTags(context.Background(), ids)
			if err != nil {
				color.Red("%v", err)
				return
			}

			color.Green("%d documents retagged", n)
		},
	}

	command.Flags().Int64SliceVarP(&ids, "id", "i", nil, "document ids")

	return command
}

func importDocCmd() *cobra.Command {
	var file string

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "import",
		Short:   "import documents from a csv or json file",
		Long:    `import documents from a csv file with the store layout or a json array of documents, every record is classified`,
		Example: "doctrack import -f <seed.csv>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			reqs, err := readSeedFile(file)
			if err != nil {
				color.Red("%v", err)
				return
			}

			d, err := openDocuments()
			if err != nil {
				logrus.Error(err)
				return
			}

			n, err := d.Import(context.Background(), reqs)
			if err != nil {
				color.Red("%v", err)
				return
			}

			color.Green("%d of %d documents imported", n, len(reqs))
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "seed file (required)")

	return command
}

// readSeedFile reads a json array of documents, or a csv file laid out like
// the flat file store, compressed when the extension names a codec.
func readSeedFile(path string) ([]repository.AddRequest, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var reqs []repository.AddRequest
		if err := json.Unmarshal(data, &reqs); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return reqs, nil
	}

	codec, err := compress.New(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		codec = compress.NewNop()
	}

	docs, err := store.NewCSVStore(path, codec).ListDocuments(context.Background())
	if err != nil {
		return nil, err
	}

	reqs := make([]repository.AddRequest, 0, len(docs))
	for _, doc := range docs {
		reqs = append(reqs, repository.AddRequest{
			Filename:    doc.Filename,
			Filepath:    doc.Filepath,
			Category:    string(doc.Category),
			Tags:        doc.Tags,
			Description: doc.Description,
			UploadDate:  doc.UploadDate,
		})
	}

	return reqs, nil
}

// withDocuments runs f against the selected backend and reports errors in color
func withDocuments(f func(ctx context.Context, d documents) ([]*model.Document, error)) ([]*model.Document, bool) {
	d, err := openDocuments()
	if err != nil {
		logrus.Error(err)
		return nil, false
	}

	docs, err := f(context.Background(), d)
	if err != nil {
		color.Red("%v", err)
		return nil, false
	}

	return docs, true
}

func printDocuments(docs []*model.Document) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Filename", "Category", "Tags", "Status", "Uploaded"})
	for _, doc := range docs {
		table.Append([]string{
			strconv.FormatInt(doc.ID, 10),
			doc.Filename,
			string(doc.Category),
			doc.Tags,
			string(doc.Status),
			model.FormatTimestamp(doc.UploadDate),
		})
	}
	table.Render()
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns true if any is missing
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		_ = cmd.Usage()

		return true
	}

	return false
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/codingforme/bingolink-cli/color"
	"github.com/codingforme/bingolink-cli/icon"
	"github.com/codingforme/bingolink-cli/release"
	"github.com/codingforme/bingolink-cli/style"
	"github.com/codingforme/bingolink-cli/util"
	"github.com/codingforme/bingolink-cli/where"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
}

// cacheCmd groups commands working on the local release cache.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local template release cache",
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheListCmd.Flags().BoolP("json", "j", false, "Print the index as JSON")
	cacheListCmd.SetOut(os.Stdout)
}

// cacheListCmd prints the cached releases, newest first.
var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached releases",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resolver, _, err := newResolver()
		handleErr(err)

		index, err := resolver.Index()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(index.Records()))
			return
		}

		if len(index) == 0 {
			cmd.Println("No releases cached yet.")
			return
		}

		cmd.Printf("%s in %s\n", style.Bold(util.Quantify(len(index), "release", "releases")), where.Templates(resolver.Root()))

		latest := index.Latest().MustGet()
		for _, record := range index.Records() {
			tag := style.Fg(color.Green)(record.Tag)
			if record == latest {
				tag += " " + style.Faint("(latest)")
			}
			cmd.Printf("%s %s\n", icon.Get(icon.Release), tag)
			cmd.Printf("  %s %s\n", style.Faint("published"), record.PublishedAt.Local().Format("2006-01-02"))
			cmd.Printf("  %s %s\n", style.Faint("path     "), resolver.Dir(record))
		}
	},
}

func init() {
	cacheCmd.AddCommand(cacheSchemaCmd)
	cacheSchemaCmd.SetOut(os.Stdout)
}

// cacheSchemaCmd prints the JSON schema of the release index file.
var cacheSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the release index",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(indexSchema()))
	},
}

func indexSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(release.Index{})
	schema.Title = "Release index"
	schema.Description = fmt.Sprintf("Content of %s, keyed by tag", where.Index("<cache>"))
	return schema
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keep2quillpad/internal/bundle"
	"github.com/pdiddy/keep2quillpad/internal/catalog"
	"github.com/pdiddy/keep2quillpad/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect a Quillpad backup (index, query, tags, export)",
	Long: `Catalog loads a Quillpad backup into a local SQLite database so the
result of a conversion can be checked before it is imported: which notes
carry which tags, what a search finds, and how many notes each tag has.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index <backup>",
	Short: "Load a backup bundle or backup.json into the catalog",
	Long: `Index reads a backup written by convert (the .zip bundle or a bare
backup.json) and replaces the catalog contents with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	backup, err := bundle.Read(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Index(context.Background(), backup, args[0], cmd.OutOrStdout())
	return err
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "List catalogued notes matching text and tags",
	Long: `Query lists notes whose title, content or checklist contains the given
text. Repeat --tag to require several tags. Without text or tags every note
is listed, up to the limit.`,
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatQueryOutput(w io.Writer, results []catalog.NoteRecord, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []catalog.NoteRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-4s  %-30s  %-8s  %-6s  %s",
		"ID", "Title", "Color", "Flags", "Tags")))
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, r := range results {
		title := truncate(r.Title, 30)
		if title == "" {
			title = mutedStyle.Render("(untitled)")
		}
		fmt.Fprintf(w, "%-4d  %-30s  %-8s  %-6s  %s\n",
			r.ID, title, r.Color, noteFlags(r.Note), strings.Join(r.TagNames, ", "))
	}

	fmt.Fprintf(w, "\n%d notes\n", len(results))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// noteFlags abbreviates the boolean note state: pinned, archived, deleted
// and list.
func noteFlags(n types.Note) string {
	var b strings.Builder
	for _, f := range []struct {
		set  bool
		char byte
	}{
		{n.IsPinned, 'P'},
		{n.IsArchived, 'A'},
		{n.IsDeleted, 'D'},
		{n.IsList, 'L'},
	} {
		if f.set {
			b.WriteByte(f.char)
		}
	}
	return b.String()
}

// --- tags subcommand ---

var catalogTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show every tag with its note count",
	Args:  cobra.NoArgs,
	RunE:  runCatalogTags,
}

func runCatalogTags(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.TagCounts(context.Background())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(counts) == 0 {
		fmt.Fprintln(w, "No tags.")
		return nil
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-4s  %-30s  %s", "ID", "Tag", "Notes")))
	for _, c := range counts {
		fmt.Fprintf(w, "%-4d  %-30s  %d\n", c.ID, c.Name, c.Notes)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalogued backup (or the subset matching --text and
--tag) to a YAML or JSON document with tag counts and resolved tag names.`,
	Args: cobra.NoArgs,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, nil)

	switch format {
	case "yaml", "":
		if out == "" {
			out = "catalog.yaml"
		}
		if err := store.ExportYAML(context.Background(), out, opts); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "catalog.json"
		}
		if err := store.ExportJSON(context.Background(), out, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	dbPath := viper.GetString("catalog_db")
	if dbPath == "" {
		dbPath = catalog.DefaultDB
	}
	maxResults, _ := cmd.Flags().GetInt("limit")
	return types.CatalogConfig{DBPath: dbPath, MaxResults: maxResults}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	tags, _ := cmd.Flags().GetStringSlice("tag")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Text:       text,
		Tags:       tags,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("db", catalog.DefaultDB, "catalog database path")
	viper.BindPFlag("catalog_db", catalogCmd.PersistentFlags().Lookup("db"))

	// Query flags.
	catalogQueryCmd.Flags().String("text", "", "text to search for in title, content and checklist")
	catalogQueryCmd.Flags().StringSlice("tag", nil, "require a tag (repeatable)")
	catalogQueryCmd.Flags().Int("limit", 0, "maximum results (0 = default of 20)")
	catalogQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("out", "", "export path (default catalog.yaml or catalog.json)")
	catalogExportCmd.Flags().String("text", "", "text filter for partial export")
	catalogExportCmd.Flags().StringSlice("tag", nil, "tag filter for partial export (repeatable)")
	catalogExportCmd.Flags().Int("limit", 0, "maximum notes to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogTagsCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}

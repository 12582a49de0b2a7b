package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sant0-9/curator/internal/catalog"
	"github.com/sant0-9/curator/internal/library"
)

var (
	catalogTag  string
	catalogJSON bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the featured books",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogTag, "tag", "", "only books with this tag")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print JSON")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var books []library.Book
	if catalogTag != "" {
		books = catalog.ByTag(catalogTag)
	} else {
		books = catalog.Featured()
	}

	if catalogJSON {
		return printJSON(cmd, books)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPRICE\tTAGS")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n", b.ID, b.Title, b.Author, b.Price, strings.Join(b.Tags, ", "))
	}
	if catalogTag != "" && len(books) == 0 {
		fmt.Fprintf(w, "\nNo books tagged %q. Tags: %s\n", catalogTag, strings.Join(catalog.Tags(), ", "))
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dbhs-alumni/merchstore/internal/domain/search/request"
	productrepo "github.com/dbhs-alumni/merchstore/internal/repository/product"
	cataloguc "github.com/dbhs-alumni/merchstore/internal/usecase/catalog"
	searchuc "github.com/dbhs-alumni/merchstore/internal/usecase/search"
)

var (
	searchCategory string
	searchSort     string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Run a storefront search against the stored catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		req, err := request.New(query, searchCategory, request.Sort(searchSort), searchLimit)
		if err != nil {
			return err
		}

		svc := searchuc.New(cataloguc.New(productrepo.New(current.store)))
		res, err := svc.Search(cmd.Context(), &req)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), &res)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", request.AllCategories, "category filter")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", string(request.SortRelevance),
		"relevance, new, top-rated, price-low, price-high or name")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results (0 for all)")
	rootCmd.AddCommand(searchCmd)
}

func printResult(out io.Writer, res *searchuc.Result) error {
	fmt.Fprintf(out, "tier: %s (%d matches)\n", res.Tier, res.Total)
	if res.Notice != "" {
		fmt.Fprintln(out, res.Notice)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tNAME\tCATEGORY\tPRICE (JMD)\tRATING")
	for i := range res.Items {
		p := &res.Items[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.1f\n", p.ID(), p.Code(), p.Name(), p.Category(), p.Price(), p.Rating())
	}
	return tw.Flush()
}

package main

import (
	"fmt"
	"strings"

	"github.com/docdex/docdex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	engine, err := deps.Engine()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		if docdex.ErrorCode(err) == docdex.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Run 'docdex index' first")
		}
		return err
	}

	hits, err := engine.Search(strings.Join(c.Query, " "), docdex.SearchOptions{
		K:        c.K,
		Site:     c.Site,
		Keywords: c.Keywords,
		Heading:  c.Heading,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, hit := range hits {
		fmt.Fprintf(deps.Stdout, "%d. %s (%s, score %.2f)\n", i+1, hit.Title, hit.SourceSite, hit.Score)
		fmt.Fprintf(deps.Stdout, "   %s\n", hit.URL)
		fmt.Fprintf(deps.Stdout, "   %s\n", hit.Snippet)
	}
	return nil
}

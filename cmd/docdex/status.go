package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Data dir: %s\n", deps.DataDir)

	engine, err := deps.Engine()
	if err != nil && docdex.ErrorCode(err) != docdex.EUNAVAILABLE {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	for _, site := range deps.Sites {
		pages, pagesErr := deps.Pages.CountPages(site.ID)

		fmt.Fprintf(deps.Stdout, "%s:\n", site.ID)
		fmt.Fprintf(deps.Stdout, "  root:  %s\n", site.Root)
		if pagesErr != nil {
			fmt.Fprintf(deps.Stdout, "  pages: unavailable (%s)\n", docdex.ErrorMessage(pagesErr))
		} else {
			fmt.Fprintf(deps.Stdout, "  pages: %d\n", pages)
		}
		if engine == nil {
			fmt.Fprintln(deps.Stdout, "  index: not built")
			continue
		}
		fmt.Fprintf(deps.Stdout, "  index: %d records\n", engine.RecordCount(site.ID))
	}

	if engine == nil {
		fmt.Fprintln(deps.Stdout, "Run 'docdex index' to build the index.")
	}
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bm25"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	for _, site := range deps.Sites {
		if c.Site != "" && c.Site != site.ID {
			continue
		}

		records, err := deps.Builder.BuildSite(deps.Ctx, site)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(deps.Stdout, "%s: no pages under %s, skipped\n", site.ID, site.Root)
			continue
		}

		if err := deps.Records.WriteRecords(site.ID, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}

		texts := make([]string, len(records))
		for i := range records {
			texts[i] = records[i].IndexedText()
		}
		if err := bm25.Save(filepath.Join(deps.DataDir, site.ID), bm25.Build(texts), records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "%s: indexed %d records\n", site.ID, len(records))
	}
	return nil
}

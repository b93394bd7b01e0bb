package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	engine, err := deps.Engine()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		if docdex.ErrorCode(err) == docdex.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Run 'docdex index' first")
		}
		return err
	}

	srv := &mcp.Server{
		Name:    "docdex",
		Version: version,
		Engine:  engine,
		Pages:   deps.Pages,
		Records: deps.Records,
		Parsers: deps.Parsers,
		DataDir: deps.DataDir,
		Logger:  deps.Logger,
	}
	return srv.Run(deps.Ctx)
}

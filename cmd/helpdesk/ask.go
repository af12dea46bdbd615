package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/helpdesk"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := strings.Join(c.Question, " ")

	answer, err := deps.Asker.Ask(deps.Ctx, question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Sources:")
	for _, url := range answer.SourceURLs() {
		fmt.Fprintf(deps.Stdout, "- %s\n", url)
	}
	return nil
}

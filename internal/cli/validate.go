package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timelanes/pkg/errors"
	"github.com/matzehuels/timelanes/pkg/timeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request.toml|request.json]",
		Short: "Check a request file without laying it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(path string) error {
	req, err := timeline.ReadRequestFile(path)
	if err != nil {
		return fmt.Errorf("load request %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		printError("%s [%s]", errors.UserMessage(err), errors.GetCode(err))
		return fmt.Errorf("validate %s: %w", path, err)
	}

	printSuccess("Request is valid")
	printKeyValue("Intervals", strconv.Itoa(len(req.Intervals)))
	for _, cat := range req.Categories() {
		p, ok := req.Policies[cat]
		if !ok {
			p = req.DefaultPolicy
		}
		printDetail("%s: %s", cat, p)
	}
	return nil
}

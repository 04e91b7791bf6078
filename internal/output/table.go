package output

import (
	"fmt"
	"io"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/pterm/pterm"
)

func RenderTable(w io.Writer, groups []types.Group) error {
	InitStyles()
	rows := [][]string{{"Group", "Host", "Hostname", "Port", "User"}}
	for _, group := range groups {
		for _, host := range group.Hosts {
			rows = append(rows, []string{
				group.Name,
				host.Name,
				valueOrDash(host.Record.Hostname),
				valueOrDash(host.Record.Port),
				valueOrDash(host.Record.User),
			})
		}
	}
	if len(rows) == 1 {
		_, err := fmt.Fprintln(w, "No hosts found in the host template.")
		return err
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(rows)
	rendered, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/goldyfruit/opsview-inventory/internal/types"
)

// RenderStatic writes an INI style Ansible inventory, one section per group.
func RenderStatic(w io.Writer, groups []types.Group) error {
	for _, group := range groups {
		if _, err := fmt.Fprintf(w, "\n[%s]\n", strings.ToLower(group.Name)); err != nil {
			return err
		}
		for _, host := range group.Hosts {
			_, err := fmt.Fprintf(w, "%s ansible_ssh_host=%s ansible_ssh_port=%s ansible_ssh_user=%s\n",
				host.Name, host.Record.Hostname, host.Record.Port, host.Record.User)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

package selector

import (
	"fmt"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/samber/lo"
)

// NotFoundError is returned when a requested host is not part of the template.
type NotFoundError struct {
	Host     string
	Template string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("host %q not found in host template %s", e.Host, e.Template)
}

// Select narrows the template host list to the entry named name. Names are
// compared exactly. An empty name selects every host.
func Select(hosts []types.TemplateHost, name, templateID string) ([]types.TemplateHost, error) {
	if name == "" {
		return hosts, nil
	}
	matched := lo.Filter(hosts, func(host types.TemplateHost, _ int) bool {
		return host.Name == name
	})
	if len(matched) == 0 {
		return nil, &NotFoundError{Host: name, Template: templateID}
	}
	return matched[len(matched)-1:], nil
}

package opsview

import (
	"fmt"
	"strings"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/tidwall/gjson"
)

func normalizeTemplate(body []byte) ([]types.TemplateHost, error) {
	list := gjson.GetBytes(body, "object.hosts")
	if !list.Exists() {
		return nil, fmt.Errorf("host template response missing object.hosts")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("host template object.hosts is not a list")
	}
	hosts := []types.TemplateHost{}
	for _, item := range list.Array() {
		hosts = append(hosts, types.TemplateHost{
			Name: item.Get("name").String(),
			Ref:  item.Get("ref").String(),
		})
	}
	return hosts, nil
}

func normalizeHost(body []byte) (types.HostDetail, error) {
	object := gjson.GetBytes(body, "object")
	if !object.IsObject() {
		return types.HostDetail{}, fmt.Errorf("host response missing object")
	}
	name := object.Get("name")
	if !name.Exists() {
		return types.HostDetail{}, fmt.Errorf("host response missing object.name")
	}
	return types.HostDetail{
		Group:   object.Get("hostgroup.name").String(),
		Name:    strings.ToLower(name.String()),
		Address: object.Get("ip").String(),
	}, nil
}

func normalizeServiceStatus(body []byte) types.CheckOutput {
	output := gjson.GetBytes(body, "list.0.services.0.output")
	if !output.Exists() {
		return types.CheckOutput{}
	}
	return types.CheckOutput{Output: output.String(), Found: true}
}

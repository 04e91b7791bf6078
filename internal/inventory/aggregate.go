package inventory

import (
	"github.com/goldyfruit/opsview-inventory/internal/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Mode string

const (
	// ModeFlat groups host records by group name.
	ModeFlat Mode = "flat"
	// ModeInventory produces an Ansible dynamic inventory with _meta.hostvars.
	ModeInventory Mode = "inventory"
	// ModeSingleHost keeps only the most recently added host.
	ModeSingleHost Mode = "single-host"
)

const MetaKey = "_meta"

// ModeFor picks the aggregation shape from the command switches: --list wins
// over --host, anything else is flat.
func ModeFor(list bool, host string) Mode {
	switch {
	case list:
		return ModeInventory
	case host != "":
		return ModeSingleHost
	default:
		return ModeFlat
	}
}

type hostMap = orderedmap.OrderedMap[string, types.HostRecord]

// Aggregator groups resolved hosts by Opsview host group. Groups and hosts
// keep the order in which they were first added.
type Aggregator struct {
	mode   Mode
	groups *orderedmap.OrderedMap[string, *hostMap]
}

func New(mode Mode) *Aggregator {
	return &Aggregator{
		mode:   mode,
		groups: orderedmap.New[string, *hostMap](),
	}
}

func (a *Aggregator) Mode() Mode {
	return a.mode
}

func (a *Aggregator) Add(host types.ResolvedHost) {
	if a.mode == ModeSingleHost {
		a.groups = orderedmap.New[string, *hostMap]()
	}
	hosts, ok := a.groups.Get(host.Group)
	if !ok {
		hosts = orderedmap.New[string, types.HostRecord]()
		a.groups.Set(host.Group, hosts)
	}
	hosts.Set(host.Name, host.Record)
}

func (a *Aggregator) AddAll(hosts []types.ResolvedHost) {
	for _, host := range hosts {
		a.Add(host)
	}
}

// Len returns the number of host entries across all groups.
func (a *Aggregator) Len() int {
	total := 0
	for pair := a.groups.Oldest(); pair != nil; pair = pair.Next() {
		total += pair.Value.Len()
	}
	return total
}

func (a *Aggregator) Groups() []types.Group {
	out := make([]types.Group, 0, a.groups.Len())
	for pair := a.groups.Oldest(); pair != nil; pair = pair.Next() {
		group := types.Group{Name: pair.Key}
		for host := pair.Value.Oldest(); host != nil; host = host.Next() {
			group.Hosts = append(group.Hosts, types.GroupHost{Name: host.Key, Record: host.Value})
		}
		out = append(out, group)
	}
	return out
}

type InventoryGroup struct {
	Hosts []string `json:"hosts" yaml:"hosts"`
}

type InventoryMeta struct {
	HostVars map[string]types.HostRecord `json:"hostvars" yaml:"hostvars"`
}

// Document returns the structure serialized by the JSON and YAML renderers.
// Flat mode yields group -> host -> record. The inventory modes yield
// group -> {hosts: [...]} plus _meta.hostvars holding every host's record.
func (a *Aggregator) Document() any {
	if a.mode == ModeFlat {
		doc := map[string]map[string]types.HostRecord{}
		for _, group := range a.Groups() {
			hosts := map[string]types.HostRecord{}
			for _, host := range group.Hosts {
				hosts[host.Name] = host.Record
			}
			doc[group.Name] = hosts
		}
		return doc
	}

	meta := InventoryMeta{HostVars: map[string]types.HostRecord{}}
	doc := map[string]any{}
	for _, group := range a.Groups() {
		names := make([]string, 0, len(group.Hosts))
		for _, host := range group.Hosts {
			names = append(names, host.Name)
			meta.HostVars[host.Name] = host.Record
		}
		doc[group.Name] = InventoryGroup{Hosts: names}
	}
	doc[MetaKey] = meta
	return doc
}

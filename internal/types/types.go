package types

// TemplateHost is one host listed by an Opsview host template.
type TemplateHost struct {
	Name string
	Ref  string
}

// HostDetail is the normalized Opsview configuration of a single host.
type HostDetail struct {
	Group   string
	Name    string
	Address string
}

// CheckOutput is the latest output of a named service check on a host.
// Found is false when the host has no service entry for the check.
type CheckOutput struct {
	Check  string
	Host   string
	Output string
	Found  bool
}

// HostRecord carries the SSH connection values of an inventory host.
type HostRecord struct {
	Hostname string `json:"Hostname" yaml:"Hostname"`
	Port     string `json:"Port" yaml:"Port"`
	User     string `json:"User" yaml:"User"`
}

// ResolvedHost is a host ready for aggregation.
type ResolvedHost struct {
	Group  string
	Name   string
	Record HostRecord
}

type GroupHost struct {
	Name   string
	Record HostRecord
}

// Group is an inventory group with its hosts in the order they were added.
type Group struct {
	Name  string
	Hosts []GroupHost
}

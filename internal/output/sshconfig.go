package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/kevinburke/ssh_config"
)

const (
	bannerWidth = 30
	sshIndent   = "  "
)

// InvalidRecordError reports a host whose record cannot be written as an
// OpenSSH client block.
type InvalidRecordError struct {
	Host   string
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("cannot write ssh config for host %q: %s %q %s", e.Host, e.Field, e.Value, e.Reason)
}

// RenderSSHConfig writes one OpenSSH client block per host, grouped under a
// banner per group. Nothing is written unless every block decodes back to
// exactly the record it was rendered from.
func RenderSSHConfig(w io.Writer, groups []types.Group) error {
	var buf bytes.Buffer
	var rendered []types.GroupHost
	for _, group := range groups {
		fmt.Fprintln(&buf, strings.Repeat("#", bannerWidth))
		fmt.Fprintf(&buf, "# Groupname %s\n\n", capitalize(group.Name))
		for _, host := range group.Hosts {
			if err := checkSSHHost(host); err != nil {
				return err
			}
			fmt.Fprintf(&buf, "Host %s\n", host.Name)
			fmt.Fprintf(&buf, "%sHostname %s\n", sshIndent, host.Record.Hostname)
			fmt.Fprintf(&buf, "%sPort %s\n", sshIndent, host.Record.Port)
			fmt.Fprintf(&buf, "%sUser %s\n\n", sshIndent, host.Record.User)
			rendered = append(rendered, host)
		}
	}

	if err := verifySSHConfig(buf.Bytes(), rendered); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func checkSSHHost(host types.GroupHost) error {
	fields := []struct {
		name  string
		value string
	}{
		{"Host", host.Name},
		{"Hostname", host.Record.Hostname},
		{"Port", host.Record.Port},
		{"User", host.Record.User},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return &InvalidRecordError{Host: host.Name, Field: field.name, Value: field.value, Reason: "is empty"}
		}
		if strings.IndexFunc(field.value, unicode.IsControl) >= 0 {
			return &InvalidRecordError{Host: host.Name, Field: field.name, Value: field.value, Reason: "contains control characters"}
		}
		if strings.ContainsAny(field.value, "#\"=") || strings.IndexFunc(field.value, unicode.IsSpace) >= 0 {
			return &InvalidRecordError{Host: host.Name, Field: field.name, Value: field.value, Reason: "must be a single plain word"}
		}
	}
	if _, err := strconv.ParseUint(host.Record.Port, 10, 16); err != nil {
		return &InvalidRecordError{Host: host.Name, Field: "Port", Value: host.Record.Port, Reason: "is not a port number"}
	}
	return nil
}

// verifySSHConfig decodes the rendered text and checks that it holds the
// implicit "Host *" block followed by one block per host, in order, each
// with exactly the Hostname, Port and User of its record.
func verifySSHConfig(content []byte, hosts []types.GroupHost) error {
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("rendered ssh config is invalid: %w", err)
	}
	if len(cfg.Hosts) != len(hosts)+1 {
		return fmt.Errorf("rendered ssh config has %d host blocks, expected %d", len(cfg.Hosts)-1, len(hosts))
	}
	for i, host := range hosts {
		block := cfg.Hosts[i+1]
		if len(block.Patterns) != 1 || block.Patterns[0].String() != host.Name {
			return fmt.Errorf("rendered ssh config block %d does not match host %q", i+1, host.Name)
		}
		want := map[string]string{
			"hostname": host.Record.Hostname,
			"port":     host.Record.Port,
			"user":     host.Record.User,
		}
		got := map[string]string{}
		for _, node := range block.Nodes {
			kv, ok := node.(*ssh_config.KV)
			if !ok {
				continue
			}
			got[strings.ToLower(kv.Key)] = kv.Value
		}
		if len(got) != len(want) {
			return fmt.Errorf("rendered ssh config block for %q has %d options, expected %d", host.Name, len(got), len(want))
		}
		for key, value := range want {
			if got[key] != value {
				return fmt.Errorf("rendered ssh config block for %q has %s %q, expected %q", host.Name, key, got[key], value)
			}
		}
	}
	return nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(value string) string {
	runes := []rune(strings.ToLower(value))
	if len(runes) == 0 {
		return value
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

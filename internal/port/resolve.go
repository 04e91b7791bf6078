// Package port picks the SSH port of a host from its service check outputs.
package port

import "regexp"

var activePortPattern = regexp.MustCompile(`port\s+(\d+)`)

// FromActive returns the first "port <digits>" value found in an active
// check output, or an empty string.
func FromActive(output string) string {
	match := activePortPattern.FindStringSubmatch(output)
	if match == nil {
		return ""
	}
	return match[1]
}

// Resolve prefers the port reported by the active check. Without one the
// passive output is returned verbatim, numeric or not.
func Resolve(activeOutput, passiveOutput string) string {
	if candidate := FromActive(activeOutput); isDigits(candidate) {
		return candidate
	}
	return passiveOutput
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

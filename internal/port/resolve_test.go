package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		active  string
		passive string
		want    string
	}{
		{name: "active port wins", active: "SSH OK - OpenSSH_7.4 (protocol 2.0) port 2222", passive: "22", want: "2222"},
		{name: "first match only", active: "port 2200 then port 2300", passive: "", want: "2200"},
		{name: "multiple spaces", active: "listening on port   8022", passive: "22", want: "8022"},
		{name: "empty active falls back", active: "", passive: "2022", want: "2022"},
		{name: "no port in active", active: "Connection refused", passive: "22", want: "22"},
		{name: "passive is not validated", active: "CRITICAL", passive: "unknown", want: "unknown"},
		{name: "port without digits", active: "port closed", passive: "22", want: "22"},
		{name: "case sensitive keyword", active: "Port 2222", passive: "22", want: "22"},
		{name: "nothing at all", active: "", passive: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.active, tc.passive))
		})
	}
}

func TestFromActive(t *testing.T) {
	assert.Equal(t, "22", FromActive("SSH OK port 22"))
	assert.Equal(t, "", FromActive("SSH OK"))
}

package opsview

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSession(t *testing.T) *Session {
	t.Helper()
	c := newMockClient(t)
	registerLogin(t, http.StatusOK, `{"token":"abc123"}`)
	session, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	return session
}

func requireSessionHeaders(t *testing.T, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "admin", req.Header.Get("X-Opsview-Username"))
		assert.Equal(t, "abc123", req.Header.Get("X-Opsview-Token"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		return httpmock.NewStringResponse(http.StatusOK, body), nil
	}
}

func TestHostTemplate(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/rest/config/hosttemplate/7", requireSessionHeaders(t, `{
		"object": {
			"name": "All servers",
			"hosts": [
				{"name": "app1", "ref": "/rest/config/host/11"},
				{"name": "db1", "ref": "/rest/config/host/12"}
			]
		}
	}`))

	hosts, err := s.HostTemplate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []types.TemplateHost{
		{Name: "app1", Ref: "/rest/config/host/11"},
		{Name: "db1", Ref: "/rest/config/host/12"},
	}, hosts)
}

func TestHostTemplateMissingHosts(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/rest/config/hosttemplate/7", httpmock.NewStringResponder(http.StatusOK, `{"object":{}}`))

	_, err := s.HostTemplate(context.Background(), "7")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
}

func TestHostTemplateNotFound(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/rest/config/hosttemplate/99", httpmock.NewStringResponder(http.StatusNotFound, `{}`))

	_, err := s.HostTemplate(context.Background(), "99")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestHostDetailLowercasesName(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/rest/config/host/11", requireSessionHeaders(t, `{
		"object": {
			"name": "App1",
			"ip": "10.0.0.5",
			"hostgroup": {"name": "web", "ref": "/rest/config/hostgroup/3"}
		}
	}`))

	detail, err := s.HostDetail(context.Background(), "/rest/config/host/11")
	require.NoError(t, err)
	assert.Equal(t, types.HostDetail{Group: "web", Name: "app1", Address: "10.0.0.5"}, detail)
}

func TestHostDetailInvalidJSON(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponder("GET", baseURL+"/rest/config/host/11", httpmock.NewStringResponder(http.StatusOK, `<html>`))

	_, err := s.HostDetail(context.Background(), "/rest/config/host/11")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
}

func TestServiceCheck(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponderWithQuery("GET", baseURL+"/rest/status/service/",
		map[string]string{"servicename": "SSH", "hostname": "app1"},
		requireSessionHeaders(t, `{"list":[{"name":"app1","services":[{"name":"SSH","output":"SSH OK - OpenSSH port 2222"}]}]}`))

	out, err := s.ServiceCheck(context.Background(), "SSH", "app1")
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "SSH OK - OpenSSH port 2222", out.Output)
	assert.Equal(t, "SSH", out.Check)
	assert.Equal(t, "app1", out.Host)
}

func TestServiceCheckMissing(t *testing.T) {
	s := newMockSession(t)
	httpmock.RegisterResponderWithQuery("GET", baseURL+"/rest/status/service/",
		map[string]string{"servicename": "SSH-Non-Active", "hostname": "app1"},
		httpmock.NewStringResponder(http.StatusOK, `{"list":[]}`))

	out, err := s.ServiceCheck(context.Background(), "SSH-Non-Active", "app1")
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, "", out.Output)
}

func TestFetchUnknownKind(t *testing.T) {
	s := newMockSession(t)
	_, err := s.Fetch(context.Background(), ResourceKind("bogus"), "x")
	assert.Error(t, err)
}

func TestServiceStatusTarget(t *testing.T) {
	assert.Equal(t, "/rest/status/service/?hostname=app+1&servicename=SSH", ServiceStatusTarget("SSH", "app 1"))
}

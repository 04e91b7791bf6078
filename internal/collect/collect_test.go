package collect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	details map[string]types.HostDetail
	checks  map[string]types.CheckOutput
	fail    map[string]error

	mu       sync.Mutex
	calls    []string
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFetcher) track() func() {
	current := f.inFlight.Add(1)
	for {
		peak := f.peak.Load()
		if current <= peak || f.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeFetcher) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeFetcher) HostDetail(_ context.Context, ref string) (types.HostDetail, error) {
	defer f.track()()
	f.record("host " + ref)
	if err, ok := f.fail[ref]; ok {
		return types.HostDetail{}, err
	}
	return f.details[ref], nil
}

func (f *fakeFetcher) ServiceCheck(_ context.Context, check, host string) (types.CheckOutput, error) {
	defer f.track()()
	f.record("service " + check + " " + host)
	out, ok := f.checks[check+"/"+host]
	if !ok {
		return types.CheckOutput{Check: check, Host: host}, nil
	}
	out.Check = check
	out.Host = host
	out.Found = true
	return out, nil
}

var defaultOpts = Options{ActiveCheck: "SSH", PassiveCheck: "SSH-Non-Active", SSHUser: "root", Concurrency: 2}

func TestCollectResolvesPorts(t *testing.T) {
	f := &fakeFetcher{
		details: map[string]types.HostDetail{
			"/h/1": {Group: "web", Name: "app1", Address: "10.0.0.5"},
			"/h/2": {Group: "db", Name: "db1", Address: "10.0.0.6"},
		},
		checks: map[string]types.CheckOutput{
			"SSH/app1":            {Output: "SSH OK - OpenSSH_8.0 port 2222"},
			"SSH-Non-Active/app1": {Output: "22"},
			"SSH/db1":             {Output: "Connection refused"},
			"SSH-Non-Active/db1":  {Output: "2022"},
		},
	}
	hosts := []types.TemplateHost{{Name: "App1", Ref: "/h/1"}, {Name: "db1", Ref: "/h/2"}}

	resolved, err := Collect(context.Background(), f, hosts, defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, []types.ResolvedHost{
		{Group: "web", Name: "app1", Record: types.HostRecord{Hostname: "10.0.0.5", Port: "2222", User: "root"}},
		{Group: "db", Name: "db1", Record: types.HostRecord{Hostname: "10.0.0.6", Port: "2022", User: "root"}},
	}, resolved)
	assert.Len(t, f.calls, 6)
}

func TestCollectActivePortWithoutPassiveCheck(t *testing.T) {
	f := &fakeFetcher{
		details: map[string]types.HostDetail{"/h/1": {Group: "web", Name: "app1", Address: "10.0.0.5"}},
		checks:  map[string]types.CheckOutput{"SSH/app1": {Output: "port 22"}},
	}
	resolved, err := Collect(context.Background(), f, []types.TemplateHost{{Name: "app1", Ref: "/h/1"}}, defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, "22", resolved[0].Record.Port)
}

func TestCollectMissingChecks(t *testing.T) {
	f := &fakeFetcher{
		details: map[string]types.HostDetail{"/h/1": {Group: "web", Name: "app1", Address: "10.0.0.5"}},
		checks:  map[string]types.CheckOutput{"SSH/app1": {Output: "CRITICAL - timeout"}},
	}
	_, err := Collect(context.Background(), f, []types.TemplateHost{{Name: "app1", Ref: "/h/1"}}, defaultOpts)

	var missing *MissingCheckError
	require.True(t, errors.As(err, &missing), "expected MissingCheckError, got %v", err)
	assert.Equal(t, "app1", missing.Host)
	assert.Equal(t, "10.0.0.5", missing.Address)
	assert.Contains(t, err.Error(), `"SSH"`)
	assert.Contains(t, err.Error(), `"SSH-Non-Active"`)
}

func TestCollectPropagatesFetchError(t *testing.T) {
	boom := fmt.Errorf("connection reset")
	f := &fakeFetcher{
		details: map[string]types.HostDetail{"/h/1": {Group: "web", Name: "app1"}},
		checks:  map[string]types.CheckOutput{"SSH/app1": {Output: "port 22"}},
		fail:    map[string]error{"/h/2": boom},
	}
	hosts := []types.TemplateHost{{Name: "app1", Ref: "/h/1"}, {Name: "app2", Ref: "/h/2"}}
	_, err := Collect(context.Background(), f, hosts, defaultOpts)
	assert.ErrorIs(t, err, boom)
}

func TestCollectKeepsTemplateOrderAndLimit(t *testing.T) {
	f := &fakeFetcher{details: map[string]types.HostDetail{}, checks: map[string]types.CheckOutput{}}
	var hosts []types.TemplateHost
	for i := 0; i < 20; i++ {
		ref := fmt.Sprintf("/h/%d", i)
		name := fmt.Sprintf("host%02d", i)
		hosts = append(hosts, types.TemplateHost{Name: name, Ref: ref})
		f.details[ref] = types.HostDetail{Group: "all", Name: name, Address: "10.0.1." + fmt.Sprint(i)}
		f.checks["SSH/"+name] = types.CheckOutput{Output: "port 22"}
	}

	opts := defaultOpts
	opts.Concurrency = 3
	resolved, err := Collect(context.Background(), f, hosts, opts)
	require.NoError(t, err)
	require.Len(t, resolved, 20)
	for i, host := range resolved {
		assert.Equal(t, fmt.Sprintf("host%02d", i), host.Name)
	}
	assert.LessOrEqual(t, int(f.peak.Load()), 3)
}

func TestCollectEmpty(t *testing.T) {
	resolved, err := Collect(context.Background(), &fakeFetcher{}, nil, defaultOpts)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

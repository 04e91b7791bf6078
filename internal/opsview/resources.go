package opsview

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goldyfruit/opsview-inventory/internal/types"
	"go.uber.org/zap"
)

type ResourceKind string

const (
	KindTemplate ResourceKind = "template"
	KindHost     ResourceKind = "host"
	KindService  ResourceKind = "service"
)

const (
	hostTemplatePath  = "/rest/config/hosttemplate/"
	serviceStatusPath = "/rest/status/service/"
)

// Fetch returns the raw JSON body of an Opsview resource. For KindTemplate
// target is the template identifier; for the other kinds it is a complete
// path, query string included.
func (s *Session) Fetch(ctx context.Context, kind ResourceKind, target string) ([]byte, error) {
	switch kind {
	case KindTemplate:
		return s.get(ctx, hostTemplatePath+url.PathEscape(target))
	case KindHost, KindService:
		return s.get(ctx, target)
	default:
		return nil, fmt.Errorf("unknown opsview resource kind %q", kind)
	}
}

func (s *Session) HostTemplate(ctx context.Context, templateID string) ([]types.TemplateHost, error) {
	body, err := s.Fetch(ctx, KindTemplate, templateID)
	if err != nil {
		return nil, err
	}
	hosts, err := normalizeTemplate(body)
	if err != nil {
		return nil, &APIError{Path: hostTemplatePath + templateID, Err: err}
	}
	s.client.log.Debug("fetched host template", zap.String("template", templateID), zap.Int("hosts", len(hosts)))
	return hosts, nil
}

func (s *Session) HostDetail(ctx context.Context, ref string) (types.HostDetail, error) {
	body, err := s.Fetch(ctx, KindHost, ref)
	if err != nil {
		return types.HostDetail{}, err
	}
	detail, err := normalizeHost(body)
	if err != nil {
		return types.HostDetail{}, &APIError{Path: ref, Err: err}
	}
	return detail, nil
}

func (s *Session) ServiceCheck(ctx context.Context, check, host string) (types.CheckOutput, error) {
	body, err := s.Fetch(ctx, KindService, ServiceStatusTarget(check, host))
	if err != nil {
		return types.CheckOutput{}, err
	}
	out := normalizeServiceStatus(body)
	out.Check = check
	out.Host = host
	s.client.log.Debug("fetched service check",
		zap.String("host", host),
		zap.String("check", check),
		zap.Bool("found", out.Found))
	return out, nil
}

// ServiceStatusTarget builds the status query for one check on one host.
func ServiceStatusTarget(check, host string) string {
	q := url.Values{}
	q.Set("servicename", check)
	q.Set("hostname", host)
	return serviceStatusPath + "?" + q.Encode()
}

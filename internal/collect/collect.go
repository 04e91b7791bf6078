// Package collect resolves every template host into an inventory record.
// Hosts are fetched concurrently up to a limit, and results keep the
// template order.
package collect

import (
	"context"
	"fmt"

	"github.com/goldyfruit/opsview-inventory/internal/port"
	"github.com/goldyfruit/opsview-inventory/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Fetcher is the part of an Opsview session the collector needs.
type Fetcher interface {
	HostDetail(ctx context.Context, ref string) (types.HostDetail, error)
	ServiceCheck(ctx context.Context, check, host string) (types.CheckOutput, error)
}

type Options struct {
	ActiveCheck  string
	PassiveCheck string
	SSHUser      string
	Concurrency  int
	Logger       *zap.Logger
}

// MissingCheckError is returned when the active check gives no port and the
// passive check is not configured on the host.
type MissingCheckError struct {
	Host         string
	Address      string
	ActiveCheck  string
	PassiveCheck string
}

func (e *MissingCheckError) Error() string {
	return fmt.Sprintf("host (%s: %s) has no port from %q and no %q check, please add it",
		e.Host, e.Address, e.ActiveCheck, e.PassiveCheck)
}

func Collect(ctx context.Context, fetcher Fetcher, hosts []types.TemplateHost, opts Options) ([]types.ResolvedHost, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]types.ResolvedHost, len(hosts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			resolved, err := resolveHost(gctx, fetcher, host, opts)
			if err != nil {
				return err
			}
			log.Debug("resolved host",
				zap.String("host", resolved.Name),
				zap.String("group", resolved.Group),
				zap.String("port", resolved.Record.Port))
			results[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func resolveHost(ctx context.Context, fetcher Fetcher, host types.TemplateHost, opts Options) (types.ResolvedHost, error) {
	detail, err := fetcher.HostDetail(ctx, host.Ref)
	if err != nil {
		return types.ResolvedHost{}, err
	}
	active, err := fetcher.ServiceCheck(ctx, opts.ActiveCheck, detail.Name)
	if err != nil {
		return types.ResolvedHost{}, err
	}
	passive, err := fetcher.ServiceCheck(ctx, opts.PassiveCheck, detail.Name)
	if err != nil {
		return types.ResolvedHost{}, err
	}

	if port.FromActive(active.Output) == "" && !passive.Found {
		return types.ResolvedHost{}, &MissingCheckError{
			Host:         detail.Name,
			Address:      detail.Address,
			ActiveCheck:  opts.ActiveCheck,
			PassiveCheck: opts.PassiveCheck,
		}
	}

	return types.ResolvedHost{
		Group: detail.Group,
		Name:  detail.Name,
		Record: types.HostRecord{
			Hostname: detail.Address,
			Port:     port.Resolve(active.Output, passive.Output),
			User:     opts.SSHUser,
		},
	}, nil
}

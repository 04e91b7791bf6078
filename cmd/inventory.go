package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/goldyfruit/opsview-inventory/internal/collect"
	"github.com/goldyfruit/opsview-inventory/internal/config"
	"github.com/goldyfruit/opsview-inventory/internal/exit"
	"github.com/goldyfruit/opsview-inventory/internal/inventory"
	"github.com/goldyfruit/opsview-inventory/internal/logging"
	"github.com/goldyfruit/opsview-inventory/internal/opsview"
	"github.com/goldyfruit/opsview-inventory/internal/output"
	"github.com/goldyfruit/opsview-inventory/internal/selector"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags that also exist as configuration keys are read back through
// config.Load; the fields only give cobra somewhere to store them.
type inventoryOptions struct {
	url          string
	username     string
	templateID   string
	activeCheck  string
	passiveCheck string
	user         string
	concurrency  int
	timeout      time.Duration
	insecureTLS  bool

	json   bool
	yaml   bool
	ssh    bool
	list   bool
	static bool
	table  bool
	host   string
}

func runInventory(cmd *cobra.Command, opts *inventoryOptions) error {
	mode, ok := output.Select(output.Selection{
		JSON:   opts.json,
		YAML:   opts.yaml,
		List:   opts.list,
		Host:   opts.host,
		Static: opts.static,
		SSH:    opts.ssh,
		Table:  opts.table,
	})
	if !ok {
		_ = cmd.Help()
		return exit.New(exit.CodeUsage, nil)
	}

	cfg, info, err := config.Load(afero.NewOsFs(), config.LoadOptions{Path: configPath, Flags: cmd.Flags()})
	if err != nil {
		return exit.New(exit.CodeConfig, err)
	}

	log := logging.New(verbose, cmd.ErrOrStderr())
	defer func() { _ = log.Sync() }()
	log.Debug(config.Describe(info))

	client, err := opsview.NewClient(opsview.Options{
		URL:                cfg.URL,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		Logger:             log,
	})
	if err != nil {
		return exit.New(exit.CodeConfig, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := client.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return exit.New(exit.CodeAPI, err)
	}

	hosts, err := session.HostTemplate(ctx, cfg.TemplateID)
	if err != nil {
		return exit.New(exit.CodeAPI, err)
	}
	hosts, err = selector.Select(hosts, opts.host, cfg.TemplateID)
	if err != nil {
		return exit.New(exit.CodeData, err)
	}

	resolved, err := collect.Collect(ctx, session, hosts, collect.Options{
		ActiveCheck:  cfg.ActiveCheck,
		PassiveCheck: cfg.PassiveCheck,
		SSHUser:      cfg.SSHUser,
		Concurrency:  cfg.Concurrency,
		Logger:       log,
	})
	if err != nil {
		var missing *collect.MissingCheckError
		if errors.As(err, &missing) {
			return exit.New(exit.CodeData, err)
		}
		return exit.New(exit.CodeAPI, err)
	}

	agg := inventory.New(inventory.ModeFor(opts.list, opts.host))
	agg.AddAll(resolved)
	log.Debug("rendering inventory",
		zap.String("output", string(mode)),
		zap.String("aggregation", string(agg.Mode())),
		zap.Int("hosts", agg.Len()))

	if err := output.Render(cmd.OutOrStdout(), mode, agg); err != nil {
		var invalid *output.InvalidRecordError
		if errors.As(err, &invalid) {
			return exit.New(exit.CodeData, err)
		}
		return exit.New(exit.CodeFailure, err)
	}
	return nil
}

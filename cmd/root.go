package cmd

import (
	"github.com/goldyfruit/opsview-inventory/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func NewRootCmd() *cobra.Command {
	opts := &inventoryOptions{}

	cmd := &cobra.Command{
		Use:   "opsview-inventory",
		Short: "Build Ansible inventories and SSH client configs from an Opsview host template",
		Long: `opsview-inventory reads every host of an Opsview host template, finds its SSH
port from an active check ("port <n>" in the check output) or a passive check
holding the port number, and prints the result as an Ansible dynamic or static
inventory, an OpenSSH client config, JSON, YAML or a table.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./opsview-inventory.yaml or ~/.config/opsview-inventory/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging on stderr")

	flags := cmd.Flags()
	flags.StringVar(&opts.url, "url", "", "Opsview base URL")
	flags.StringVar(&opts.username, "username", "", "Opsview user (administrator role)")
	flags.StringVar(&opts.templateID, "template-id", "", `ID of the "Host Template" that holds all servers`)
	flags.StringVar(&opts.activeCheck, "active-check-name", config.DefaultActiveCheck, `name of the active SSH "Service Check"`)
	flags.StringVar(&opts.passiveCheck, "passive-check-name", config.DefaultPassiveCheck, `name of the passive SSH "Service Check"`)
	flags.StringVar(&opts.user, "user", config.DefaultSSHUser, "SSH user printed for every host")
	flags.IntVar(&opts.concurrency, "concurrency", config.DefaultConcurrency, "number of hosts fetched in parallel")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "timeout of each Opsview API request")
	flags.BoolVar(&opts.insecureTLS, "insecure-skip-tls-verify", false, "skip TLS certificate verification")

	flags.BoolVar(&opts.json, "json", false, "print output as JSON")
	flags.BoolVar(&opts.yaml, "yaml", false, "print output as YAML")
	flags.BoolVar(&opts.ssh, "ssh", false, "print output as OpenSSH client config")
	flags.BoolVar(&opts.list, "list", false, "print output as Ansible dynamic inventory")
	flags.BoolVar(&opts.list, "ansible", false, "alias of --list")
	flags.BoolVar(&opts.static, "ansible-static", false, "print output as Ansible static inventory")
	flags.BoolVar(&opts.table, "table", false, "print output as a table")
	flags.StringVar(&opts.host, "host", "", "Ansible option to get information for a specific host")

	return cmd
}

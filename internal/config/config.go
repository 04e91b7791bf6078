package config

import "time"

const (
	DefaultSSHUser      = "root"
	DefaultActiveCheck  = "SSH"
	DefaultPassiveCheck = "SSH-Non-Active"
	DefaultConcurrency  = 4
	DefaultTimeout      = 20 * time.Second

	EnvPrefix = "OPSVIEW"
)

// Config holds everything a run needs. It is loaded once and not modified
// afterwards.
type Config struct {
	URL                string        `mapstructure:"url" validate:"required,url"`
	Username           string        `mapstructure:"username" validate:"required"`
	Password           string        `mapstructure:"password" validate:"required"`
	SSHUser            string        `mapstructure:"ssh_user" validate:"required"`
	TemplateID         string        `mapstructure:"template_id" validate:"required"`
	ActiveCheck        string        `mapstructure:"active_check" validate:"required"`
	PassiveCheck       string        `mapstructure:"passive_check" validate:"required"`
	Concurrency        int           `mapstructure:"concurrency" validate:"min=1"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"min=0"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

var defaults = map[string]any{
	"url":                  "",
	"username":             "",
	"password":             "",
	"ssh_user":             DefaultSSHUser,
	"template_id":          "",
	"active_check":         DefaultActiveCheck,
	"passive_check":        DefaultPassiveCheck,
	"concurrency":          DefaultConcurrency,
	"timeout":              DefaultTimeout,
	"insecure_skip_verify": false,
}

// FlagKeys maps command line flag names to configuration keys. Only flags
// the user actually set override the other sources.
var FlagKeys = map[string]string{
	"url":                      "url",
	"username":                 "username",
	"template-id":              "template_id",
	"user":                     "ssh_user",
	"active-check-name":        "active_check",
	"passive-check-name":       "passive_check",
	"concurrency":              "concurrency",
	"timeout":                  "timeout",
	"insecure-skip-tls-verify": "insecure_skip_verify",
}

// Package config provides a unified configuration system for the
// permission-tree evaluator and its demonstration CLI.
package config

// Config is the top-level, YAML-unmarshalable configuration accepted by
// cmd/permtreectl and embeddable by a host process.
type Config struct {
	// Evaluator controls the core Evaluator's behavior.
	Evaluator EvaluatorConfig `yaml:"evaluator" json:"evaluator"`

	// Backends names which examples/ backend(s) to wire into the
	// registry, and their connection settings.
	Backends BackendsConfig `yaml:"backends" json:"backends"`

	// Logging controls internal/log's verbosity.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	Version string `yaml:"version" json:"version"`
	Profile string `yaml:"profile" json:"profile"`
}

// EvaluatorConfig controls bypass behavior.
type EvaluatorConfig struct {
	AllowBypass bool `yaml:"allow_bypass" json:"allow_bypass" default:"true"`
}

// BackendsConfig selects and configures the examples/ permission-type
// backends a host wants wired into a registry.
type BackendsConfig struct {
	Vault VaultConfig `yaml:"vault" json:"vault"`
	AWS   AWSConfig   `yaml:"aws" json:"aws"`
	Audit AuditConfig `yaml:"audit" json:"audit"`
}

// VaultConfig configures examples/vault-role's HashiCorp Vault KV v2
// client.
type VaultConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled" default:"false"`
	Address    string `yaml:"address" json:"address" env:"VAULT_ADDR"`
	Token      string `yaml:"token" json:"token" env:"VAULT_TOKEN"`
	SkipVerify bool   `yaml:"skip_verify" json:"skip_verify" env:"VAULT_SKIP_VERIFY"`
	Namespace  string `yaml:"namespace" json:"namespace" env:"VAULT_NAMESPACE"`
	Mount      string `yaml:"mount" json:"mount" default:"secret"`
	RolesPath  string `yaml:"roles_path" json:"roles_path" default:"roles"`
}

// AWSConfig configures examples/aws-flag's SSM Parameter Store client.
type AWSConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled" default:"false"`
	Region    string `yaml:"region" json:"region" env:"AWS_REGION"`
	Profile   string `yaml:"profile" json:"profile" env:"AWS_PROFILE"`
	Endpoint  string `yaml:"endpoint" json:"endpoint" env:"AWS_ENDPOINT"`
	ParamPath string `yaml:"param_path" json:"param_path" default:"/permtree/flags"`
}

// AuditConfig configures examples/audit-bus's NATS publisher.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" default:"false"`
	URL     string `yaml:"url" json:"url" env:"NATS_URL" default:"nats://127.0.0.1:4222"`
	Subject string `yaml:"subject" json:"subject" default:"permtree.decisions"`
}

// LoggingConfig controls internal/log's DebugOn toggle.
type LoggingConfig struct {
	Debug bool `yaml:"debug" json:"debug" env:"PERMTREE_DEBUG" default:"false"`
}

// Default returns a Config with the documented defaults applied.
func Default() *Config {
	return &Config{
		Evaluator: EvaluatorConfig{AllowBypass: true},
		Backends: BackendsConfig{
			Vault: VaultConfig{Mount: "secret", RolesPath: "roles"},
			AWS:   AWSConfig{ParamPath: "/permtree/flags"},
			Audit: AuditConfig{URL: "nats://127.0.0.1:4222", Subject: "permtree.decisions"},
		},
		Version: "1",
		Profile: "default",
	}
}

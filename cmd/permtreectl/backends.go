package main

import (
	"context"

	"github.com/ordermind/logical-permissions-go/examples/audit-bus/auditbus"
	"github.com/ordermind/logical-permissions-go/examples/aws-flag/awsflag"
	"github.com/ordermind/logical-permissions-go/examples/vault-role/vaultrole"
	"github.com/ordermind/logical-permissions-go/internal/config"
	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

// wireConfiguredBackends registers the real examples/ backends enabled in
// cfg.Backends under "role" (vault-role) and "flag" (aws-flag), replacing
// any always-grant stub registerStubTypes put there and adding the type
// otherwise, whether or not the tree uses it.
// Types the tree references but cfg does not enable a backend for keep
// their stub callback, so `check` still produces a decision rooted in
// real gate/bypass logic without requiring every backend to be reachable.
func wireConfiguredBackends(ev *permtree.Evaluator, cfg *config.Config) error {
	if cfg.Backends.Vault.Enabled {
		backend, err := vaultrole.New(
			cfg.Backends.Vault.Address,
			cfg.Backends.Vault.Token,
			cfg.Backends.Vault.Namespace,
			cfg.Backends.Vault.SkipVerify,
			cfg.Backends.Vault.Mount,
			cfg.Backends.Vault.RolesPath,
		)
		if err != nil {
			return err
		}
		if err := upsertType(ev, "role", backend.Callback); err != nil {
			return err
		}
	}

	if cfg.Backends.AWS.Enabled {
		backend, err := awsflag.New(
			cfg.Backends.AWS.Region,
			cfg.Backends.AWS.Profile,
			cfg.Backends.AWS.Endpoint,
			cfg.Backends.AWS.ParamPath,
		)
		if err != nil {
			return err
		}
		if err := upsertType(ev, "flag", backend.Callback); err != nil {
			return err
		}
	}

	return nil
}

// upsertType registers cb under name whether or not a stub is already
// registered there.
func upsertType(ev *permtree.Evaluator, name string, cb permtree.Callback) error {
	if ev.Types.Exists(name) {
		return ev.Types.Replace(name, cb)
	}
	return ev.Types.Add(name, cb)
}

// checkAccess runs tree through ev, routing the call through an
// auditbus.AuditedEvaluator when cfg.Backends.Audit is enabled so the
// decision is also published to NATS.
func checkAccess(ev *permtree.Evaluator, cfg *config.Config, tree permtree.Node, permCtx permtree.Context, allowBypass bool) (bool, error) {
	if !cfg.Backends.Audit.Enabled {
		return ev.CheckAccess(context.Background(), tree, permCtx, allowBypass)
	}

	auditor, err := auditbus.New(cfg.Backends.Audit.URL, cfg.Backends.Audit.Subject, ev)
	if err != nil {
		return false, err
	}
	defer auditor.Close()

	return auditor.CheckAccess(context.Background(), tree, permCtx, allowBypass)
}

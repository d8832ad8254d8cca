package system

import (
	"context"
	"time"

	"mac-bootstrap/internal/command"
	"mac-bootstrap/internal/logger"
)

// sudoRefreshInterval is how often the background keep-alive renews the
// cached sudo credentials. The default sudo timestamp timeout is 5 minutes,
// so one refresh per minute keeps the session warm with plenty of margin.
const sudoRefreshInterval = time.Minute

// StartPrivilegeSession makes sure sudo credentials are cached and keeps
// them warm for as long as ctx lives.
//
// It first probes non-interactively (`sudo -n true`); only when that fails
// does the user get one interactive password prompt. A goroutine then
// refreshes the timestamp on a fixed interval and exits when the task
// sequence's context is cancelled, so the keep-alive cannot outlive the run.
//
// Failure to elevate is not fatal here: individual privileged steps will
// fail on their own, with their own warnings.
func StartPrivilegeSession(ctx context.Context, r command.Runner, env command.Env) {
	if _, err := r.Run(ctx, env, "sudo", "-n", "true"); err != nil {
		logger.Info("[INFO] Some steps need administrator privileges; you may be prompted for your password.\n")
		if err := r.Interactive(ctx, env, "sudo", "-v"); err != nil {
			logger.Warn("[WARN] Could not acquire sudo privileges: %v. Privileged steps may fail.\n", err)
			return
		}
	}

	go func() {
		ticker := time.NewTicker(sudoRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Debug("[DEBUG] Stopping sudo keep-alive\n")
				return
			case <-ticker.C:
				if _, err := r.Run(ctx, env, "sudo", "-n", "-v"); err != nil {
					logger.Debug("[DEBUG] sudo refresh failed: %v\n", err)
				}
			}
		}
	}()
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/pkg/config"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

// Pinger is the health check surface a dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IndustraHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and fails readiness if any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IndustraHub-Env", cfg.App.Env)

		statuses := map[string]string{}
		healthy := true
		for name, dep := range checks {
			if dep == nil {
				statuses[name] = "not configured"
				healthy = false
				continue
			}
			ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
			err := dep.Ping(ctx)
			cancel()
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "dependency", name), "readiness check failed: "+err.Error())
				}
				statuses[name] = "unavailable"
				healthy = false
				continue
			}
			statuses[name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(statuses)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}

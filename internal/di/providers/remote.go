package providers

import (
	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/remote"
)

// RemoteClientHandle wraps the remote store client. Client is nil when no
// remote is configured; the engine then runs fully offline.
type RemoteClientHandle struct {
	Client *remote.Client
}

// ProvideRemoteClient provides the remote store client.
func ProvideRemoteClient(i do.Injector) (*RemoteClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RemoteEnabled() {
		log.Info("No remote store configured, running offline")
		return &RemoteClientHandle{Client: nil}, nil
	}

	client := remote.NewClient(log.Logger, cfg.Remote)
	log.Info("Remote store client configured",
		"base_url", cfg.Remote.BaseURL,
		"timeout", cfg.Remote.Timeout,
	)

	return &RemoteClientHandle{Client: client}, nil
}

// ProvideNotifier provides the match push notifier.
func ProvideNotifier(i do.Injector) (*notify.Notifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return notify.New(log.Logger, cfg.Notify.Enabled, cfg.Notify.FunctionURL, cfg.Remote.AnonKey), nil
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/auth"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/logger"
)

// AuthKey wraps the device token key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the device token key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.DeviceTokenKey = key

	log.Info("Device token key loaded",
		"token_duration", cfg.Auth.DeviceTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.DeviceTokenDuration)
}

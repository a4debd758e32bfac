package providers

import (
	"github.com/samber/do/v2"

	"github.com/choosyapp/choosy-server/internal/config"
	"github.com/choosyapp/choosy-server/internal/giphy"
	"github.com/choosyapp/choosy-server/internal/logger"
)

// ProvideGiphyClient provides the rate-limited Giphy API client.
func ProvideGiphyClient(i do.Injector) (*giphy.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Giphy.APIKey == "" {
		// Config validation guarantees a key in production; in development
		// search simply returns provider errors until one is set.
		log.Warn("No Giphy API key configured - gif search will fail")
	}

	return giphy.NewClient(cfg.Giphy.APIKey, cfg.Giphy.BaseURL, log.Logger), nil
}

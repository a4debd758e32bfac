package providers

import (
	"github.com/samber/do/v2"

	"github.com/choosyapp/choosy-server/internal/auth"
	"github.com/choosyapp/choosy-server/internal/giphy"
	"github.com/choosyapp/choosy-server/internal/logger"
	"github.com/choosyapp/choosy-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideSearchService provides the gif search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	provider := do.MustInvoke[*giphy.Client](i)

	return service.NewSearchService(provider), nil
}

// ProvideStarService provides the star service.
func ProvideStarService(i do.Injector) (*service.StarService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	provider := do.MustInvoke[*giphy.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStarService(storeHandle.Store, provider, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	provider := do.MustInvoke[*giphy.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, provider, log.Logger), nil
}

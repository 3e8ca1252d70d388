package auth

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/auth/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideStore[domain.User]),
	fx.Provide(service.New),
)

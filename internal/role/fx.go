package role

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/role/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("role.service",
	fx.Provide(repository.ProvideStore[domain.Role]),
	fx.Provide(service.New),
)

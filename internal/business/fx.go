package business

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/business/domain"
	"github.com/menuku/menuku/internal/business/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.ProvideStore[domain.Business]),
	fx.Provide(service.New),
)

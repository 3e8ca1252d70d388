package category

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/category/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("category.service",
	fx.Provide(repository.ProvideStore[domain.Category]),
	fx.Provide(service.New),
)

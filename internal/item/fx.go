package item

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/item/domain"
	"github.com/menuku/menuku/internal/item/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("item.service",
	fx.Provide(repository.ProvideStore[domain.Item]),
	fx.Provide(service.New),
)

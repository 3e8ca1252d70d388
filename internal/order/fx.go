package order

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/order/domain"
	"github.com/menuku/menuku/internal/order/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.ProvideStore[domain.Order]),
	fx.Provide(repository.ProvideStore[domain.OrderLine]),
	fx.Provide(service.New),
)

package subscription

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/subscription/domain"
	"github.com/menuku/menuku/internal/subscription/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.ProvideStore[domain.UserSubscriptionPlan]),
	fx.Provide(service.New),
)

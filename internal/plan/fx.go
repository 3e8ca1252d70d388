package plan

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/plan/domain"
	"github.com/menuku/menuku/internal/plan/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.ProvideStore[domain.SubscriptionPlan]),
	fx.Provide(service.New),
)

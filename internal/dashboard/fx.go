package dashboard

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/dashboard/service"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(service.New),
)

package user

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/user/service"
)

var Module = fx.Module("user.service",
	fx.Provide(service.New),
)

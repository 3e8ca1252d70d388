package events

import "go.uber.org/fx"

var Module = fx.Module("events",
	fx.Provide(
		NewHub,
		func(h *Hub) Notifier { return h },
	),
)

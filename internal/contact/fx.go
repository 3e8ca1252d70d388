package contact

import (
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/contact/domain"
	"github.com/menuku/menuku/internal/contact/service"
	"github.com/menuku/menuku/pkg/repository"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.ProvideStore[domain.MessagingContact]),
	fx.Provide(service.New),
)

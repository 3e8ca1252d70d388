package main

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/menuku/menuku/internal/config"
	"github.com/menuku/menuku/internal/migration"
	"github.com/menuku/menuku/internal/observability"
	"github.com/menuku/menuku/internal/server"
	"github.com/menuku/menuku/internal/token"
	"github.com/menuku/menuku/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(RegisterTokenIssuer),
		db.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func RegisterTokenIssuer(cfg config.Config) (*token.Issuer, error) {
	return token.NewIssuer(cfg.AuthJWTSecret, time.Duration(cfg.AuthTokenTTLMin)*time.Minute)
}

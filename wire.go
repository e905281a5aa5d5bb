//go:build wireinject

package main

import (
	"context"

	"carpetqr/ioc"
	"carpetqr/pkg/server"
	"github.com/google/wire"
)

func InitApp(ctx context.Context) (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitReadAuth,
		ioc.InitAdminAuth,
		ioc.InitAppService,
		ioc.InitScheduler,
		ioc.InitCarpetHandler,
		ioc.InitGinEngine,
		server.NewHTTPServer,
	))
}

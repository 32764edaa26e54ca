//go:build wireinject
// +build wireinject

package di

import (
	"folio/config"
	"folio/infras/jwt"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/infras/redis"
	"folio/infras/s3"
	"folio/permissions"
	"folio/shared/cache"
	"folio/transport/http"
	"folio/transport/http/middleware"
	"folio/transport/http/router"
	"folio/transport/worker"

	"github.com/google/wire"

	albumRepository "folio/internal/domains/album/repository"
	albumService "folio/internal/domains/album/service"
	analyticsRepository "folio/internal/domains/analytics/repository"
	analyticsService "folio/internal/domains/analytics/service"
	authService "folio/internal/domains/auth/service"
	"folio/internal/domains/blog/markdown"
	blogRepository "folio/internal/domains/blog/repository"
	blogService "folio/internal/domains/blog/service"
	homepageService "folio/internal/domains/homepage/service"
	imageRepository "folio/internal/domains/image/repository"
	imageService "folio/internal/domains/image/service"
	settingRepository "folio/internal/domains/setting/repository"
	settingService "folio/internal/domains/setting/service"
	testimonialRepository "folio/internal/domains/testimonial/repository"
	testimonialService "folio/internal/domains/testimonial/service"
	userRepository "folio/internal/domains/user/repository"
	userService "folio/internal/domains/user/service"

	albumHandler "folio/internal/handlers/album"
	analyticsHandler "folio/internal/handlers/analytics"
	authHandler "folio/internal/handlers/auth"
	blogHandler "folio/internal/handlers/blog"
	homepageHandler "folio/internal/handlers/homepage"
	imageHandler "folio/internal/handlers/image"
	settingHandler "folio/internal/handlers/setting"
	testimonialHandler "folio/internal/handlers/testimonial"
	userHandler "folio/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	markdown.New,
)

var repositories = wire.NewSet(
	analyticsRepository.New,
	blogRepository.NewPost,
	blogRepository.NewCategory,
	settingRepository.New,
	testimonialRepository.New,
	userRepository.New,
)

var imageDomain = wire.NewSet(
	imageRepository.New,
	albumRepository.New,
	imageService.New,
)

var domains = wire.NewSet(
	repositories,
	imageDomain,
	albumService.New,
	analyticsService.New,
	authService.New,
	blogService.New,
	blogService.NewCategory,
	homepageService.New,
	settingService.New,
	testimonialService.New,
	userService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	albumHandler.New,
	analyticsHandler.New,
	authHandler.New,
	blogHandler.New,
	homepageHandler.New,
	imageHandler.New,
	settingHandler.New,
	testimonialHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		s3.New,
		kafka.New,
		cache.NewRedisCache,
		imageDomain,
		worker.New,
	)

	return &worker.Worker{}
}

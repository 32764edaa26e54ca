package main

import (
	"context"
	"folio/config"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/infras/redis"
	"folio/internal/domains/user/model/dto"
	"folio/internal/domains/user/repository"
	"folio/internal/domains/user/service"
	"folio/shared/cache"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/logger"
	"folio/shared/validator"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const seedTimeout = 30 * time.Second

// Creates the first admin account from ADMIN_EMAIL, ADMIN_PASSWORD and the optional ADMIN_NAME.
// Running it again with an existing email is a no-op.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	req := dto.CreateUserRequest{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
		Level:    constant.RoleAdmin,
	}

	if name := os.Getenv("ADMIN_NAME"); name != "" {
		req.FullName = &name
	}

	if err := validator.ValidateStruct(&req); err != nil {
		log.Fatal().Err(err).Msg("invalid admin credentials, set ADMIN_EMAIL and ADMIN_PASSWORD")
	}

	ot := otel.New(cfg)
	users := service.New(
		repository.New(postgres.New(cfg), ot),
		cfg,
		cache.NewRedisCache(redis.New(cfg), ot),
		ot,
	)

	ctx, cancel := context.WithTimeout(context.WithValue(context.Background(), constant.ContextKeyUserID, constant.ContextSystem), seedTimeout)
	defer cancel()

	user, err := users.Create(ctx, req)
	if err != nil {
		if failure.GetCode(err) == http.StatusConflict {
			log.Info().Str("email", req.Email).Msg("admin already exists")

			return
		}

		log.Fatal().Err(err).Msg("failed to create admin")
	}

	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("admin created")
}

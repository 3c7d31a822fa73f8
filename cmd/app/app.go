package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/festijeux/market-api/internal/api"
	"github.com/festijeux/market-api/internal/config"
	"github.com/festijeux/market-api/internal/db"
	"github.com/festijeux/market-api/internal/logger"
	"github.com/festijeux/market-api/internal/pkg/revocation"
	"github.com/festijeux/market-api/internal/pkg/storage"
	"github.com/festijeux/market-api/internal/ws"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	gormDB, err := db.Open(conf.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	revoked, err := newRevocationStore(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize token revocation -> %w", err)
	}

	photos, err := storage.NewPhotoStore(conf.Storage.UploadDir, api.UploadsRoute, conf.Storage.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage -> %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(conf.API.AllowedCORSDomains)
	go hub.Run(ctx)

	s := api.NewServer(conf, gormDB, revoked, hub, photos)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// newRevocationStore uses Redis when an address is configured so that
// logouts hold across instances. Without one, revocations live in memory.
func newRevocationStore(conf *config.RedisConfig) (revocation.Store, error) {
	if conf.Addr == "" {
		zap.L().Warn("redis.addr is empty, revoked tokens are kept in memory")
		return revocation.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return revocation.NewRedisStore(client), nil
}

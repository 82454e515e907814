package service

import (
	"os"

	"portfolio/app/config"
	"portfolio/app/logger"
	"portfolio/app/repositories"
)

// defaultConfigPath is read when neither --config nor CONFIG_PATH is given.
const defaultConfigPath = "config.yml"

// splitConfigFlag removes "--config <path>" from args.
func splitConfigFlag(args []string) (string, []string) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "--config" && i+1 < len(args) {
			path = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return path, rest
}

// openCommentStore opens the configured comment backend. The returned func
// releases the underlying connection.
func openCommentStore(cfg *config.Config, log logger.Logger) (repositories.CommentStore, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := repositories.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using redis comment store", logger.String("address", cfg.Redis.Address))
		return repositories.NewRedisCommentStore(client), client.Close, nil
	default:
		db, err := repositories.OpenBadger(cfg.Storage.BadgerPath, cfg.Storage.InMemory)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using badger comment store",
			logger.String("path", cfg.Storage.BadgerPath),
			logger.Bool("in_memory", cfg.Storage.InMemory),
		)
		return repositories.NewBadgerCommentStore(db), db.Close, nil
	}
}

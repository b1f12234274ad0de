package main

import (
	"context"
	"runtime"

	"github.com/DaUnderlord/monday-sippin-sub000/auth"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/database"
	"github.com/DaUnderlord/monday-sippin-sub000/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	sysConfigs, err := config.LoadConfigs()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	envCfg := sysConfigs.Config

	if envCfg.DebugMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if envCfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if envCfg.JwtSecret == "" {
		log.Warn().Msg("jwtSecret is empty, session cookies will not validate")
	}
	auth.SetSecret(envCfg.JwtSecret)

	ctx := context.Background()

	var db *mongo.Database
	if envCfg.MongoUri != "" {
		client, mongoDb, err := database.InitMongoClient(ctx, envCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("MongoDB unavailable")
		}
		defer client.Disconnect(context.Background())
		db = mongoDb
	}

	if envCfg.RedisUrl != "" {
		if err := database.InitRedis(ctx, envCfg.RedisUrl); err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, play specs cached in memory")
		}
	}

	router := routes.SetupRouter(db, config.NewConfigManager(envCfg))

	log.Info().Str("port", envCfg.Port).Msg("Server starting")
	if err := router.Run("0.0.0.0:" + envCfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Logger()
}

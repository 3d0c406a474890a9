package main

import (
	"context"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/callvault/callvault/internal/config"
	"github.com/callvault/callvault/internal/server"
	"github.com/callvault/callvault/internal/storage"
)

func main() {
	// Local development reads credentials from a .env file.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	cred, err := azidentity.NewClientSecretCredential(
		cfg.Azure.TenantID, cfg.Azure.ClientID, cfg.Azure.ClientSecret, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("azure credential")
	}
	recordings, err := storage.NewContainer(cfg.Azure.AccountURL, cfg.Azure.RecordingsContainer, cred)
	if err != nil {
		logger.Fatal().Err(err).Msg("recordings container")
	}
	talkdesk, err := storage.NewContainer(cfg.Azure.AccountURL, cfg.Azure.TalkdeskContainer, cred)
	if err != nil {
		logger.Fatal().Err(err).Msg("talkdesk container")
	}

	srv := server.New(cfg, logger, recordings, talkdesk)
	if err := srv.Start(context.Background()); err != nil {
		logger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

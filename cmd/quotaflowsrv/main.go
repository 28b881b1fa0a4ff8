package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quotaflow/quotaflow/internal/common/logtrace"
	"github.com/quotaflow/quotaflow/internal/crmsrv/auth"
	"github.com/quotaflow/quotaflow/internal/crmsrv/config"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/mongodb"
	"github.com/quotaflow/quotaflow/internal/crmsrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if err := config.Config().Validate(); err != nil {
		slog.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	validity, err := config.ParseTokenDuration(config.Config().SessionTokenValidity)
	if err != nil {
		slog.Error().Err(err).Msg("invalid session token validity")
		os.Exit(1)
	}
	issuer, err := auth.NewTokenIssuer(config.Config().JWTSigningSecret, validity)
	if err != nil {
		slog.Error().Err(err).Msg("unable to create token issuer")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, aerr := mongodb.New(ctx, config.Config().MongoURI, config.Config().MongoDatabase)
	cancel()
	if aerr != nil {
		slog.Error().Err(aerr).Msg("unable to connect to database")
		os.Exit(1)
	}
	defer store.Close(context.Background())

	s, err := server.CreateNewServer(store, issuer)
	if err != nil {
		slog.Error().Err(err).Msg("Unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}

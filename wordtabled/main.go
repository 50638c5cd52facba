package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oddtable/wordtable/server"
	"github.com/oddtable/wordtable/session"
	"github.com/oddtable/wordtable/words"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// optional .env for local runs
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, cleanup, err := openStore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open store")
	}
	defer cleanup()

	ctrl := session.NewController(store, session.Options{
		Dictionary: openDictionary(),
	})

	srv := server.NewServer(ctrl, server.Config{
		Addr: os.Getenv("WORDTABLE_ADDR"),
	})

	err = srv.Run(ctx)
	log.Info().Err(err).Msg("server return")
	if err != nil && err != context.Canceled {
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (session.Store, func(), error) {
	dsn := os.Getenv("WORDTABLE_POSTGRES_DSN")
	if dsn == "" {
		log.Info().Msg("using in-memory store")
		return session.NewMemoryStore(), func() {}, nil
	}
	pg, err := session.NewPostgresStore(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("using postgres store")
	return pg, pg.Close, nil
}

func openDictionary() words.Dictionary {
	switch path := os.Getenv("WORDTABLE_DICTIONARY_FILE"); {
	case os.Getenv("WORDTABLE_DICTIONARY_MODE") == "off":
		log.Info().Msg("dictionary checking off")
		return words.Permissive{}
	case path != "":
		set, err := words.LoadSet(path)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load dictionary")
		}
		log.Info().Int("words", len(set)).Msg("dictionary loaded")
		return set
	default:
		log.Info().Msg("using embedded dictionary")
		return words.DefaultDictionary()
	}
}

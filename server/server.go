// Package server exposes the session controller over HTTP and pushes
// committed state changes to websocket subscribers. Notification happens
// strictly after a move commits; the engines never touch the network.
package server

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/session"
)

type Config struct {
	Addr string
}

type Server struct {
	ctrl   *session.Controller
	cfg    Config
	coreCh chan interface{}
}

func NewServer(ctrl *session.Controller, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "0.0.0.0:8080"
	}
	return &Server{
		ctrl:   ctrl,
		cfg:    cfg,
		coreCh: make(chan interface{}, 100),
	}
}

// Run serves until the context ends.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("server running")
	defer log.Info().Msg("server stopping")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.runCore(ctx) })
	g.Go(func() error { return s.runWebGateway(ctx, s.cfg.Addr) })
	return g.Wait()
}

// runCore owns the subscriber sets. Everything that touches them goes
// through this one goroutine.
func (s *Server) runCore(ctx context.Context) error {
	subs := map[string]map[string]clientBundle{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-s.coreCh:
			switch msg := in.(type) {
			case subscribeMsg:
				m, ok := subs[msg.GameID]
				if !ok {
					m = map[string]clientBundle{}
					subs[msg.GameID] = m
				}
				m[msg.ClientID] = msg.Client
				msg.Rep <- nil
			case unsubscribeMsg:
				delete(subs[msg.GameID], msg.ClientID)
			case committedMsg:
				data, err := json.Marshal(GameUpdate{Game: msg.Game, News: msg.News})
				if err != nil {
					log.Error().Err(err).Msg("failed to encode update")
					continue
				}
				frame := WsJSONMessage{Head: "update", Data: data}
				for name, c := range subs[msg.Game.ID] {
					select {
					case c.downCh <- frame:
					default:
						// client lagging
						log.Info().Str("game", msg.Game.ID).Msgf("client lagging: %s", name)
					}
				}
			default:
				log.Warn().Msgf("nonsense in core: %#v", in)
			}
		}
	}
}

// committed hands a freshly persisted state to the core for fan-out.
func (s *Server) committed(g *session.Game, news []game.Change) {
	s.coreCh <- committedMsg{Game: g, News: news}
}

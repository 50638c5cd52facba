package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oddtable/wordtable/duet"
	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/session"
)

// duetStrictness parses the request value, defaulting to basic.
func duetStrictness(s string) duet.Strictness {
	switch duet.Strictness(s) {
	case duet.StrictnessStrict:
		return duet.StrictnessStrict
	case duet.StrictnessVeryStrict:
		return duet.StrictnessVeryStrict
	default:
		return duet.StrictnessBasic
	}
}

func (s *Server) runWebGateway(ctx context.Context, addr string) error {
	log := log.With().Str("gw", "web").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("web listening on http://%v", ln.Addr())

	rh := restHandler{
		server: s,
		log:    log,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	a := r.Group("/api")
	a.GET("/games", rh.listGames)
	a.POST("/games", rh.makeGame)
	a.GET("/games/:id", rh.getGame)
	a.DELETE("/games/:id", rh.deleteGame)
	a.POST("/games/:id/join", rh.joinGame)
	a.POST("/games/:id/abandon", rh.abandonGame)
	a.POST("/games/:id/moves", rh.submitMove)
	a.GET("/games/:id/moves", rh.listMoves)
	r.GET("/ws", s.serveWS)

	hs := &http.Server{
		Handler:      r,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(sctx)
	}()

	err = hs.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type restHandler struct {
	server *Server
	log    zerolog.Logger
}

// httpStatus maps the error taxonomy onto HTTP codes.
func httpStatus(err error) int {
	switch game.KindOf(err) {
	case game.KindValidation:
		return http.StatusBadRequest
	case game.KindAuthorization:
		return http.StatusForbidden
	case game.KindConflict:
		return http.StatusConflict
	case game.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"success": false, "error": err.Error()})
}

func (rh restHandler) listGames(c *gin.Context) {
	games, err := rh.server.ctrl.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	type row struct {
		ID      string      `json:"id"`
		Type    game.Type   `json:"game_type"`
		Status  game.Status `json:"status"`
		Players int         `json:"players"`
	}
	out := make([]row, 0, len(games))
	for _, g := range games {
		out = append(out, row{ID: g.ID, Type: g.Type, Status: g.Status, Players: len(g.Players)})
	}
	c.JSON(http.StatusOK, out)
}

type makeGameInput struct {
	Type       game.Type `json:"game_type"`
	Seats      int       `json:"seats"`
	Strictness string    `json:"strictness"`
	Creator    string    `json:"creator"`
}

func (rh restHandler) makeGame(c *gin.Context) {
	var in makeGameInput
	if err := c.BindJSON(&in); err != nil {
		return
	}
	g, err := rh.server.ctrl.Create(c.Request.Context(), in.Type, session.CreateOptions{
		Seats:      in.Seats,
		Strictness: duetStrictness(in.Strictness),
		Creator:    in.Creator,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (rh restHandler) getGame(c *gin.Context) {
	g, err := rh.server.ctrl.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (rh restHandler) deleteGame(c *gin.Context) {
	if err := rh.server.ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type joinInput struct {
	Name string `json:"name"`
}

func (rh restHandler) joinGame(c *gin.Context) {
	var in joinInput
	if err := c.BindJSON(&in); err != nil {
		return
	}
	g, err := rh.server.ctrl.Join(c.Request.Context(), c.Param("id"), in.Name)
	if err != nil {
		fail(c, err)
		return
	}
	rh.server.committed(g, []game.Change{{Who: in.Name, What: "joins"}})
	c.JSON(http.StatusOK, g)
}

func (rh restHandler) abandonGame(c *gin.Context) {
	var in joinInput
	if err := c.BindJSON(&in); err != nil {
		return
	}
	g, err := rh.server.ctrl.Abandon(c.Request.Context(), c.Param("id"), in.Name)
	if err != nil {
		fail(c, err)
		return
	}
	rh.server.committed(g, []game.Change{{Who: in.Name, What: "abandons"}})
	c.JSON(http.StatusOK, g)
}

func (rh restHandler) submitMove(c *gin.Context) {
	player := c.Query("player")
	if player == "" {
		fail(c, game.Invalid("NOPLAYER", "player query parameter required"))
		return
	}
	var env game.Envelope
	if err := c.BindJSON(&env); err != nil {
		return
	}
	g, out, err := rh.server.ctrl.Submit(c.Request.Context(), c.Param("id"), player, env)
	if err != nil {
		fail(c, err)
		return
	}
	rh.server.committed(g, out.News)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    g,
		"outcome": out,
	})
}

func (rh restHandler) listMoves(c *gin.Context) {
	moves, err := rh.server.ctrl.Moves(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, moves)
}

package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// serveWS subscribes a client to one game's committed updates. Query
// params: game (required), client (optional display id).
func (s *Server) serveWS(c *gin.Context) {
	gameID := c.Query("game")
	clientID := c.Query("client")
	if gameID == "" {
		c.JSON(400, gin.H{"success": false, "error": "game query parameter required"})
		return
	}
	if clientID == "" {
		clientID = c.Request.RemoteAddr
	}

	log := log.With().Str("gw", "ws").Str("game", gameID).Str("client", clientID).Logger()

	if _, err := s.ctrl.Get(c.Request.Context(), gameID); err != nil {
		c.JSON(httpStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("ws accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	client := clientBundle{downCh: make(chan WsJSONMessage, 32)}
	rep := make(chan error)
	s.coreCh <- subscribeMsg{GameID: gameID, ClientID: clientID, Client: client, Rep: rep}
	if err := <-rep; err != nil {
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	defer func() {
		s.coreCh <- unsubscribeMsg{GameID: gameID, ClientID: clientID}
	}()

	log.Info().Msg("subscribed")

	ctx := c.Request.Context()

	// reader: we take no input over the socket, but we must drain it to
	// notice the client going away
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server stopping")
			return
		case <-readDone:
			log.Info().Msg("client gone")
			return
		case frame := <-client.downCh:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(wctx, conn, frame)
			cancel()
			if err != nil {
				log.Info().Err(err).Msg("write failed")
				return
			}
		}
	}
}

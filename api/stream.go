package api

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orrery/engine"
)

// streamReply acknowledges a command sent over the socket
type streamReply struct {
	Type  string             `json:"type"`
	Kind  engine.CommandKind `json:"kind,omitempty"`
	Error string             `json:"error,omitempty"`
}

// stream pushes snapshots at the broadcast rate and accepts commands on the same socket
func (s *Server) stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("api: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxInboundSize)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	replies := make(chan streamReply, 8)
	go s.readCommands(ctx, cancel, conn, c.ClientIP(), replies)

	limiter := rate.NewLimiter(rate.Limit(s.broadcastHz), 1)
	var sent uint64
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		select {
		case reply := <-replies:
			if err := writeJSON(conn, reply); err != nil {
				return
			}
		default:
		}

		snap, version := s.publisher.Latest()
		if version == 0 || version == sent {
			continue
		}
		if err := writeJSON(conn, gin.H{"type": "snapshot", "version": version, "data": snap}); err != nil {
			return
		}
		sent = version
	}
}

// readCommands decodes inbound command frames until the client goes away
func (s *Server) readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, ip string, replies chan<- streamReply) {
	defer cancel()
	limiter := s.limiter.GetLimiter(ip)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var reply streamReply
		var cmd engine.Command
		switch {
		case !limiter.Allow():
			reply = streamReply{Type: "error", Error: "rate limited"}
		case json.Unmarshal(data, &cmd) != nil:
			reply = streamReply{Type: "error", Error: "malformed command"}
		default:
			if _, err := s.enqueue(cmd); err != nil {
				reply = streamReply{Type: "error", Kind: cmd.Kind, Error: err.Error()}
			} else {
				reply = streamReply{Type: "ack", Kind: cmd.Kind}
			}
		}

		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

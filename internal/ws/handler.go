package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/guesswho-backend/internal/engine"
	"github.com/DoyleJ11/guesswho-backend/internal/hub"
	"github.com/DoyleJ11/guesswho-backend/internal/lobby"
	"github.com/DoyleJ11/guesswho-backend/internal/seed"
	"github.com/DoyleJ11/guesswho-backend/internal/types"
	pub "github.com/DoyleJ11/guesswho-backend/pkg/types"
)

var errUnknownType = errors.New("unknown type")

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *zap.Logger
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			logger.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 8)
		clientID := uuid.NewString()
		log := logger.With(zap.String("lobby", code), zap.String("client_id", clientID))

		lb.Inbox() <- lobby.Join{ClientID: clientID, Outbox: out}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// Lobby dropped us or shut down.
						conn.Close(websocket.StatusGoingAway, "lobby closed")
						return
					}
					state := pub.NewSessionSnapshot(snap.Version, snap.State)
					send(writeCtx, conn, opts.WriteTimeout, types.ServerMessage{Type: types.MsgStateSnapshot, Snapshot: &state})
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), opts.ReadTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				log.Debug("websocket read ended", zap.Error(err))
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				sendError(r.Context(), conn, opts.WriteTimeout, "bad json")
				continue
			}

			cmd, err := toEngineCommand(cm)
			if err != nil {
				sendError(r.Context(), conn, opts.WriteTimeout, err.Error())
				continue
			}

			res, err := lb.Do(r.Context(), cmd)
			if err != nil {
				return
			}
			if res.Err != nil {
				sendError(r.Context(), conn, opts.WriteTimeout, res.Err.Error())
			}
		}
	}
}

func toEngineCommand(m types.ClientMessage) (engine.Command, error) {
	switch m.Type {
	case types.MsgNewSeed:
		sd, err := seed.Parse(m.Seed)
		if err != nil {
			return engine.Command{}, err
		}
		return engine.Command{Type: engine.CmdInitialize, Seed: sd}, nil
	case types.MsgRandomSeed:
		return engine.Command{Type: engine.CmdInitialize, Seed: seed.Random()}, nil
	case types.MsgClick:
		return engine.Command{Type: engine.CmdClick, Item: m.Item}, nil
	case types.MsgUndo:
		return engine.Command{Type: engine.CmdUndo}, nil
	default:
		return engine.Command{}, errUnknownType
	}
}

func send(parent context.Context, conn *websocket.Conn, timeout time.Duration, msg types.ServerMessage) {
	payload, _ := json.Marshal(msg)
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func sendError(ctx context.Context, conn *websocket.Conn, timeout time.Duration, reason string) {
	send(ctx, conn, timeout, types.ServerMessage{Type: types.MsgError, Error: reason})
}

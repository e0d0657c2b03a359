package lobby

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/guesswho-backend/internal/engine"
)

var ErrClosed = errors.New("lobby closed")

type Msg interface{ isLobbyMsg() }

// Intent is one player action. Reply, when set, must be buffered; it receives
// the outcome whether or not the action was accepted.
type Intent struct {
	Cmd   engine.Command
	Reply chan Outcome
}

func (Intent) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Snapshot struct {
	Version int
	State   engine.View
}

type View struct {
	Version    int
	NumClients int
	State      engine.View
}

// Outcome reports what an Intent did. Err is set when the action was rejected,
// in which case State is the unchanged session.
type Outcome struct {
	Version int
	State   engine.View
	Err     error
}

// Lobby is the only goroutine that touches its session, so every intent runs
// to completion before the next one starts.
type Lobby struct {
	inbox   chan Msg
	session *engine.Session
	version int
	clients map[string]chan Snapshot
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, session *engine.Session, logger *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64), // Small buffer
		session: session,
		version: 0,
		clients: make(map[string]chan Snapshot),
		log:     logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- l.snapshot()
				l.log.Debug("client joined", zap.String("client_id", msg.ClientID))

			case Leave:
				delete(l.clients, msg.ClientID)

			case Intent:
				l.handleIntent(msg)

			case GetState:
				msg.Reply <- View{
					Version:    l.version,
					NumClients: len(l.clients),
					State:      l.session.View(),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleIntent(msg Intent) {
	events, err := l.session.Apply(msg.Cmd)
	if err != nil {
		l.log.Debug("intent ignored",
			zap.String("command", string(msg.Cmd.Type)),
			zap.String("item", msg.Cmd.Item),
			zap.String("mode", string(l.session.Mode())),
			zap.Error(err),
		)
	} else if len(events) > 0 {
		l.version++
		l.broadcast(l.snapshot())
		if engine.ContainsEvent(events, engine.EvtSessionInitialized) {
			l.log.Info("session initialized",
				zap.Stringer("seed", l.session.Seed()),
				zap.Int("cards", len(l.session.Selection())),
			)
		}
	}

	if msg.Reply != nil {
		msg.Reply <- Outcome{Version: l.version, State: l.session.View(), Err: err}
	}
}

func (l *Lobby) snapshot() Snapshot {
	return Snapshot{Version: l.version, State: l.session.View()}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
			l.log.Warn("dropped slow client", zap.String("client_id", id))
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Do sends an intent and waits for its outcome.
func (l *Lobby) Do(ctx context.Context, cmd engine.Command) (Outcome, error) {
	reply := make(chan Outcome, 1)
	select {
	case l.inbox <- Intent{Cmd: cmd, Reply: reply}:
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-l.ctx.Done():
		return Outcome{}, ErrClosed
	}
	select {
	case out := <-reply:
		return out, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-l.ctx.Done():
		return Outcome{}, ErrClosed
	}
}

// State asks the loop for a consistent view of the lobby.
func (l *Lobby) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	select {
	case l.inbox <- GetState{Reply: reply}:
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-l.ctx.Done():
		return View{}, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-l.ctx.Done():
		return View{}, ErrClosed
	}
}

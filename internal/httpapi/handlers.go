package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/guesswho-backend/internal/engine"
	"github.com/DoyleJ11/guesswho-backend/internal/hub"
	"github.com/DoyleJ11/guesswho-backend/internal/lobby"
	"github.com/DoyleJ11/guesswho-backend/internal/seed"
	pub "github.com/DoyleJ11/guesswho-backend/pkg/types"
)

// Deps is what the handlers need. Catalog is loaded once at startup and
// shared read-only by every session.
type Deps struct {
	Hub            *hub.Hub
	Catalog        []string
	SelectionSize  int
	Logger         *zap.Logger
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.SelectionSize <= 0 {
		d.SelectionSize = engine.DefaultSelectionSize
	}
	if d.WSReadTimeout <= 0 {
		d.WSReadTimeout = 30 * time.Second
	}
	if d.WSWriteTimeout <= 0 {
		d.WSWriteTimeout = 3 * time.Second
	}
	return d
}

type seedRequest struct {
	Seed string `json:"seed"`
}

type clickRequest struct {
	Item string `json:"item"`
}

type createResponse struct {
	Code     string              `json:"code"`
	Snapshot pub.SessionSnapshot `json:"snapshot"`
}

type errorResponse struct {
	Error    string               `json:"error"`
	Snapshot *pub.SessionSnapshot `json:"snapshot,omitempty"`
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seedRequest
		if err := decodeOptional(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		sd := seed.Random()
		if req.Seed != "" {
			parsed, err := seed.Parse(req.Seed)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			sd = parsed
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			reply := make(chan *lobby.Lobby, 1)
			d.Hub.Inbox() <- hub.GetLobby{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			d.Logger.Debug("collision on code, regenerating", zap.String("code", c))
		}

		session := engine.New(sd, d.Catalog, d.SelectionSize)
		reply := make(chan *lobby.Lobby, 1)
		d.Hub.Inbox() <- hub.EnsureLobby{Code: code, Session: session, Reply: reply}
		lb := <-reply
		if lb == nil {
			writeError(w, http.StatusInternalServerError, "failed to create lobby")
			return
		}

		view, err := lb.State(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, createResponse{
			Code:     code,
			Snapshot: pub.NewSessionSnapshot(view.Version, view.State),
		})
	}
}

func GetSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, ok := findLobby(w, r, d)
		if !ok {
			return
		}
		view, err := lb.State(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, pub.NewSessionSnapshot(view.Version, view.State))
	}
}

func DeleteSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := findLobby(w, r, d); !ok {
			return
		}
		d.Hub.Inbox() <- hub.RemoveLobby{Code: chi.URLParam(r, "code")}
		w.WriteHeader(http.StatusNoContent)
	}
}

func NewSeed(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		sd, err := seed.Parse(req.Seed)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		apply(w, r, d, engine.Command{Type: engine.CmdInitialize, Seed: sd})
	}
}

func RandomSeed(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, d, engine.Command{Type: engine.CmdInitialize, Seed: seed.Random()})
	}
}

func Click(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Item == "" {
			writeError(w, http.StatusBadRequest, "item is required")
			return
		}
		apply(w, r, d, engine.Command{Type: engine.CmdClick, Item: req.Item})
	}
}

func Undo(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apply(w, r, d, engine.Command{Type: engine.CmdUndo})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func apply(w http.ResponseWriter, r *http.Request, d Deps, cmd engine.Command) {
	lb, ok := findLobby(w, r, d)
	if !ok {
		return
	}

	res, err := lb.Do(r.Context(), cmd)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	snap := pub.NewSessionSnapshot(res.Version, res.State)
	switch {
	case res.Err == nil:
		writeJSON(w, http.StatusOK, snap)
	case engine.IsNoOp(res.Err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: res.Err.Error(), Snapshot: &snap})
	default:
		d.Logger.Error("intent failed", zap.String("command", string(cmd.Type)), zap.Error(res.Err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func findLobby(w http.ResponseWriter, r *http.Request, d Deps) (*lobby.Lobby, bool) {
	reply := make(chan *lobby.Lobby, 1)
	d.Hub.Inbox() <- hub.GetLobby{Code: chi.URLParam(r, "code"), Reply: reply}
	lb := <-reply
	if lb == nil {
		writeError(w, http.StatusNotFound, "lobby not found")
		return nil, false
	}
	return lb, true
}

// decodeOptional accepts an empty body.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

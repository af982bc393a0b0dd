// internal/httpserver/routes_rooms.go
//
// Room endpoints.
// Responsibilities:
//   - GET  /rooms                 : lobby listing
//   - POST /rooms                 : create a room and seat its creator
//   - POST /rooms/{id}/join       : seat a participant, issue a seat token
//   - GET  /rooms/{id}            : full snapshot (seat token)
//   - POST /rooms/{id}/actions    : submit one action (seat token)
//   - POST /rooms/{id}/leave      : free a lobby seat (seat token)
//
// Rooms publish every commit through fanout, in commit order; the HTTP
// caller gets its own view of the fresh snapshot plus the events it may see.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hexsettlers/internal/game"
	"github.com/robalobadob/hexsettlers/internal/room"
	"github.com/robalobadob/hexsettlers/internal/ws"
)

type createRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type joinRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// seatResponse is returned by create and join.
type seatResponse struct {
	RoomID   string        `json:"roomId"`
	PlayerID string        `json:"playerId"`
	Token    string        `json:"token"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// actionRequest is the inbound action envelope; RoomID is optional over HTTP.
type actionRequest struct {
	RoomID string `json:"roomId,omitempty"`
	game.Action
}

type actionResponse struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Events   []game.Event  `json:"events"`
}

func (s *Server) mountRooms(r chi.Router) {
	r.Get("/rooms", s.handleListRooms)
	r.Post("/rooms", s.handleCreateRoom)
	r.Post("/rooms/{id}/join", s.handleJoinRoom)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSeat)
		r.Get("/rooms/{id}", s.handleSnapshot)
		r.Post("/rooms/{id}/actions", s.handleAction)
		r.Post("/rooms/{id}/leave", s.handleLeave)
	})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rooms.List())
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	rm, err := s.rooms.Create(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("create room")
		writeError(w, http.StatusInternalServerError, "create_failed", "")
		return
	}
	s.seatPlayer(w, rm, req.Name, req.Password, http.StatusCreated)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "room_not_found", "")
		return
	}
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	s.seatPlayer(w, rm, req.Name, req.Password, http.StatusOK)
}

// seatPlayer joins name into rm, issues a token and publishes the new lobby state.
func (s *Server) seatPlayer(w http.ResponseWriter, rm *room.Room, name, password string, status int) {
	playerID, snap, err := rm.Join(name, password)
	switch {
	case errors.Is(err, room.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid_name", err.Error())
		return
	case errors.Is(err, room.ErrWrongPassword):
		writeError(w, http.StatusForbidden, "wrong_password", "")
		return
	case errors.Is(err, game.ErrRoomFull):
		writeError(w, http.StatusConflict, "room_full", "")
		return
	case errors.Is(err, game.ErrNotInLobby):
		writeError(w, http.StatusConflict, "game_started", "")
		return
	case err != nil:
		log.Error().Err(err).Str("room", rm.ID()).Msg("join room")
		writeError(w, http.StatusInternalServerError, "join_failed", "")
		return
	}

	tok, exp, err := s.signer.Sign(rm.ID(), playerID, strings.TrimSpace(name))
	if err != nil {
		log.Error().Err(err).Msg("sign seat token")
		writeError(w, http.StatusInternalServerError, "token_error", "")
		return
	}
	s.setSeatCookie(w, tok, exp)
	writeJSON(w, status, seatResponse{RoomID: rm.ID(), PlayerID: playerID, Token: tok, Snapshot: snap.For(playerID)})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "room_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot().For(seat(r).PlayerID))
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	claims := seat(r)
	rm, err := s.rooms.Get(claims.RoomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "room_not_found", "")
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	if req.RoomID != "" && req.RoomID != claims.RoomID {
		writeError(w, http.StatusBadRequest, "wrong_room", "")
		return
	}

	res, err := rm.Submit(r.Context(), claims.PlayerID, req.Action)
	if err != nil {
		code := game.Classify(err)
		status := http.StatusConflict
		if code == game.CodeUnknownPlayer {
			status = http.StatusForbidden
		}
		writeError(w, status, string(code), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Snapshot: res.Snapshot.For(claims.PlayerID),
		Events:   visibleTo(res.Events, claims.PlayerID),
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	claims := seat(r)
	removed, err := s.rooms.Leave(claims.RoomID, claims.PlayerID)
	if err != nil {
		writeError(w, http.StatusNotFound, "room_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// fanout is the room.Publisher backed by the websocket hub. Each seat gets
// its own view of the snapshot; private events go only to their recipients.
type fanout struct{ hub *ws.Hub }

func (f fanout) Publish(roomID string, res room.Result) {
	f.hub.BroadcastEach(roomID, func(playerID string) ws.Envelope {
		return ws.Envelope{Type: ws.TypeState, Payload: res.Snapshot.For(playerID)}
	})
	for _, ev := range res.Events {
		env := ws.Envelope{Type: ws.TypeEvent, Payload: ev}
		if ev.Public() {
			f.hub.Broadcast(roomID, env)
		} else {
			f.hub.Send(roomID, env, ev.Recipients...)
		}
	}
}

// visibleTo drops private events not addressed to playerID.
func visibleTo(events []game.Event, playerID string) []game.Event {
	out := make([]game.Event, 0, len(events))
	for _, ev := range events {
		if ev.Public() {
			out = append(out, ev)
			continue
		}
		for _, id := range ev.Recipients {
			if id == playerID {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

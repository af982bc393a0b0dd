// internal/httpserver/routes_ws.go
//
// GET /rooms/{id}/ws : live channel for one seat.
// Responsibilities:
//   - Check the origin, upgrade, and register the socket with the hub.
//   - Push the current snapshot, then read action envelopes until close.
//   - Report rejections privately as ACTION_REJECTED.
//   - On disconnect, free the seat if the room is still in its lobby.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hexsettlers/internal/game"
	"github.com/robalobadob/hexsettlers/internal/ws"
)

// maxFrameBytes bounds one inbound message.
const maxFrameBytes = 16 << 10

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	claims := seat(r)
	if o := r.Header.Get("Origin"); o != "" && o != s.origin {
		writeError(w, http.StatusForbidden, "forbidden_origin", "")
		return
	}
	rm, err := s.rooms.Get(claims.RoomID)
	if err != nil {
		writeError(w, http.StatusNotFound, "room_not_found", "")
		return
	}
	if !rm.Seated(claims.PlayerID) {
		writeError(w, http.StatusForbidden, string(game.CodeUnknownPlayer), "")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Debug().Err(err).Msg("ws accept")
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxFrameBytes)

	roomID, playerID := claims.RoomID, claims.PlayerID
	rm.Observe(func(snap game.Snapshot) {
		s.hub.Add(roomID, playerID, conn)
		s.hub.Send(roomID, ws.Envelope{Type: ws.TypeState, Payload: snap.For(playerID)}, playerID)
	})
	log.Info().Str("room", roomID).Str("player", playerID).Msg("ws connected")
	defer s.disconnect(roomID, playerID, conn)

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}
		var req actionRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.hub.Send(roomID, ws.Envelope{Type: ws.TypeError, Payload: errorBody{Error: "bad_json"}}, playerID)
			continue
		}
		if req.RoomID != "" && req.RoomID != roomID {
			s.reject(roomID, playerID, req.Type, game.CodeInvalidTarget, "wrong room")
			continue
		}
		if _, err := rm.Submit(r.Context(), playerID, req.Action); err != nil {
			s.reject(roomID, playerID, req.Type, game.Classify(err), err.Error())
		}
	}
}

// reject tells only the actor why its action was refused.
func (s *Server) reject(roomID, playerID string, act game.ActionType, code game.Code, detail string) {
	s.hub.Send(roomID, ws.Envelope{
		Type:    ws.TypeRejected,
		Payload: ws.Rejection{Action: string(act), Reason: string(code), Detail: detail},
	}, playerID)
}

// disconnect unregisters conn; a lobby seat is freed so the room can refill.
func (s *Server) disconnect(roomID, playerID string, conn ws.Conn) {
	s.hub.Remove(roomID, conn)
	log.Info().Str("room", roomID).Str("player", playerID).Msg("ws disconnected")
	if _, err := s.rooms.Leave(roomID, playerID); err != nil {
		log.Debug().Err(err).Str("room", roomID).Msg("leave on disconnect")
	}
}

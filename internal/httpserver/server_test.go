package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hexsettlers/assets"
	"github.com/robalobadob/hexsettlers/internal/game"
	"github.com/robalobadob/hexsettlers/internal/history"
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/room"
	"github.com/robalobadob/hexsettlers/internal/session"
	"github.com/robalobadob/hexsettlers/internal/ws"
)

type fixture struct {
	ts      *httptest.Server
	rooms   *room.Registry
	history *history.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	migs, err := assets.Migrations()
	require.NoError(t, err)
	for _, m := range migs {
		_, err := db.Exec(m.SQL)
		require.NoError(t, err, m.Name)
	}

	hist := history.NewStore(db)
	rooms := room.NewRegistry(7, hist)
	srv := New(Options{
		Rooms:   rooms,
		Hub:     ws.NewHub(),
		Signer:  session.NewSigner("test-secret", time.Hour),
		History: hist,
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &fixture{ts: ts, rooms: rooms, history: hist}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

type seatBody struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

type snapBody struct {
	RoomID  string `json:"roomId"`
	Players []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"players"`
	GameState struct {
		Phase        string `json:"phase"`
		ChatMessages []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"chatMessages"`
	} `json:"gameState"`
}

// openRoom creates a room for Ann and seats Bob.
func (f *fixture) openRoom(t *testing.T) (ann, bob seatBody) {
	t.Helper()
	res := f.do(t, http.MethodPost, "/rooms", "", map[string]string{"name": "Ann"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	ann = decodeBody[seatBody](t, res)
	require.Len(t, ann.RoomID, room.IDLength)

	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/join", "", map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	bob = decodeBody[seatBody](t, res)
	require.NotEqual(t, ann.PlayerID, bob.PlayerID)
	return ann, bob
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	res := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "application/json")
}

func TestCreateJoinStartFlow(t *testing.T) {
	f := newFixture(t)
	ann, bob := f.openRoom(t)

	list := decodeBody[[]room.Summary](t, f.do(t, http.MethodGet, "/rooms", "", nil))
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Players)

	res := f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/actions", bob.Token, game.NewAction(game.ActStartGame, nil))
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = f.do(t, http.MethodGet, "/rooms/"+ann.RoomID, ann.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	snap := decodeBody[snapBody](t, res)
	assert.Equal(t, string(game.PhaseSetupRound1), snap.GameState.Phase)
	assert.Len(t, snap.Players, 2)

	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/join", "", map[string]string{"name": "Cy"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "lobby is closed once the game starts")
}

func TestRejectedActionIsConflict(t *testing.T) {
	f := newFixture(t)
	ann, _ := f.openRoom(t)

	res := f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/actions", ann.Token,
		game.NewAction(game.ActSendMessage, map[string]string{"message": "   "}))
	require.Equal(t, http.StatusConflict, res.StatusCode)
	body := decodeBody[errorBody](t, res)
	assert.Equal(t, string(game.CodeInvalidTarget), body.Error)

	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/actions", ann.Token,
		game.NewAction(game.ActStartGame, nil))
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/actions", ann.Token,
		game.NewAction(game.ActStartGame, nil))
	require.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, string(game.CodeIllegalPhase), decodeBody[errorBody](t, res).Error)
}

func TestChatOverHTTPReturnsEvents(t *testing.T) {
	f := newFixture(t)
	ann, _ := f.openRoom(t)

	res := f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/actions", ann.Token,
		map[string]any{"roomId": ann.RoomID, "action": "SEND_MESSAGE", "payload": map[string]string{"message": " hello "}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[struct {
		Snapshot snapBody `json:"snapshot"`
		Events   []struct {
			Type string `json:"type"`
		} `json:"events"`
	}](t, res)
	require.Len(t, body.Events, 1)
	assert.Equal(t, string(game.EvChatMessage), body.Events[0].Type)
	require.Len(t, body.Snapshot.GameState.ChatMessages, 1)
	assert.Equal(t, "hello", body.Snapshot.GameState.ChatMessages[0].Text)
	assert.Equal(t, "Ann", body.Snapshot.GameState.ChatMessages[0].Sender)
}

func TestSeatTokenChecks(t *testing.T) {
	f := newFixture(t)
	ann, _ := f.openRoom(t)

	res := f.do(t, http.MethodGet, "/rooms/"+ann.RoomID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = f.do(t, http.MethodGet, "/rooms/"+ann.RoomID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	other := decodeBody[seatBody](t, f.do(t, http.MethodPost, "/rooms", "", map[string]string{"name": "Zed"}))
	res = f.do(t, http.MethodGet, "/rooms/"+ann.RoomID, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = f.do(t, http.MethodPost, "/rooms/NOPE00/join", "", map[string]string{"name": "Bob"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPrivateRoomPassword(t *testing.T) {
	f := newFixture(t)
	res := f.do(t, http.MethodPost, "/rooms", "", map[string]string{"name": "Ann", "password": "sesame"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	ann := decodeBody[seatBody](t, res)

	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/join", "", map[string]string{"name": "Bob", "password": "nope"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/join", "", map[string]string{"name": "Bob", "password": "sesame"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/join", "", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLeaveLobby(t *testing.T) {
	f := newFixture(t)
	ann, bob := f.openRoom(t)

	res := f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/leave", bob.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, decodeBody[map[string]bool](t, res)["removed"])

	res = f.do(t, http.MethodPost, "/rooms/"+ann.RoomID+"/leave", ann.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	_, err := f.rooms.Get(ann.RoomID)
	assert.ErrorIs(t, err, room.ErrRoomNotFound, "empty lobby is closed")
}

func TestHistoryEndpoints(t *testing.T) {
	f := newFixture(t)
	ann := player.New("p-ann", "Ann", 0)
	ann.VictoryPoints = 10
	snap := game.Snapshot{
		RoomID:    "HIST01",
		Players:   []player.Player{ann.Clone()},
		GameState: game.StateView{Phase: game.PhaseGameOver, Winner: "p-ann", Turns: 30},
	}
	id, err := f.history.Insert(context.Background(), history.FromSnapshot(snap, time.Now()))
	require.NoError(t, err)

	list := decodeBody[[]history.Match](t, f.do(t, http.MethodGet, "/history?limit=5", "", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "HIST01", list[0].RoomID)

	res := f.do(t, http.MethodGet, "/history/"+jsonNumber(id), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	m := decodeBody[history.Match](t, res)
	require.Len(t, m.Seats, 1)
	assert.Equal(t, "Ann", m.Seats[0].Name)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/history/9999", "", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/history/abc", "", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/history?limit=-1", "", nil).StatusCode)
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

type wsMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dialSeat(t *testing.T, f *fixture, s seatBody) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/rooms/" + s.RoomID + "/ws?token=" + s.Token
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) wsMsg {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var m wsMsg
		require.NoError(t, json.Unmarshal(data, &m))
		if m.Type == typ {
			return m
		}
	}
}

func TestSocketActionsAndRejections(t *testing.T) {
	f := newFixture(t)
	ann, _ := f.openRoom(t)
	conn := dialSeat(t, f, ann)
	defer conn.CloseNow()

	first := readUntil(t, conn, ws.TypeState)
	var snap snapBody
	require.NoError(t, json.Unmarshal(first.Payload, &snap))
	assert.Equal(t, ann.RoomID, snap.RoomID)

	ctx := context.Background()
	msg, _ := json.Marshal(map[string]any{"roomId": ann.RoomID, "action": "SEND_MESSAGE", "payload": map[string]string{"message": "gl hf"}})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, msg))
	ev := readUntil(t, conn, ws.TypeEvent)
	assert.Contains(t, string(ev.Payload), "CHAT_MESSAGE")

	msg, _ = json.Marshal(map[string]any{"action": "ROLL_DICE"})
	require.NoError(t, conn.Write(ctx, websocket.MessageText, msg))
	rej := readUntil(t, conn, ws.TypeRejected)
	var why ws.Rejection
	require.NoError(t, json.Unmarshal(rej.Payload, &why))
	assert.Equal(t, "ROLL_DICE", why.Action)
	assert.Equal(t, string(game.CodeNotYourTurn), why.Reason, "a lobby has no current player")

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	readUntil(t, conn, ws.TypeError)
}

func TestSocketDisconnectFreesLobbySeat(t *testing.T) {
	f := newFixture(t)
	ann, bob := f.openRoom(t)
	conn := dialSeat(t, f, bob)
	readUntil(t, conn, ws.TypeState)
	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))

	rm, err := f.rooms.Get(ann.RoomID)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return !rm.Seated(bob.PlayerID) }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, rm.Seated(ann.PlayerID))
}

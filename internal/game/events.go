// internal/game/events.go
//
// Outbound events. Apply returns the events an accepted action produced; the
// room layer forwards them. An event with no recipients goes to everyone in
// the room, otherwise only to the listed player ids.

package game

import (
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

// EventKind names an outbound event.
type EventKind string

const (
	EvGameStarted     EventKind = "GAME_STARTED"
	EvPhaseChanged    EventKind = "PHASE_CHANGED"
	EvSettlementBuilt EventKind = "SETTLEMENT_BUILT"
	EvCityBuilt       EventKind = "CITY_BUILT"
	EvRoadBuilt       EventKind = "ROAD_BUILT"
	EvDiceRolled      EventKind = "DICE_ROLLED"
	EvProduced        EventKind = "RESOURCES_PRODUCED"
	EvRobberMoved     EventKind = "ROBBER_MOVED"
	EvResourceStolen  EventKind = "RESOURCE_STOLEN"
	EvBankTrade       EventKind = "BANK_TRADE"
	EvTradeOffered    EventKind = "TRADE_OFFERED"
	EvTradeCompleted  EventKind = "TRADE_COMPLETED"
	EvTradeClosed     EventKind = "TRADE_CLOSED"
	EvTradeDeclined   EventKind = "TRADE_DECLINED"
	EvDevCardBought   EventKind = "DEV_CARD_BOUGHT"
	EvDevCardPlayed   EventKind = "DEV_CARD_PLAYED"
	EvBonusAwarded    EventKind = "BONUS_AWARDED"
	EvTurnEnded       EventKind = "TURN_ENDED"
	EvGameOver        EventKind = "GAME_OVER"
	EvChatMessage     EventKind = "CHAT_MESSAGE"
)

// Event is one observable outcome of an action.
type Event struct {
	Kind       EventKind `json:"type"`
	Payload    any       `json:"payload,omitempty"`
	Recipients []string  `json:"-"`
}

// Public reports whether the event goes to the whole room.
func (e Event) Public() bool { return len(e.Recipients) == 0 }

// Payloads.

type GameStarted struct {
	Order []string `json:"order"`
}

type PhaseChanged struct {
	Phase         Phase     `json:"phase"`
	SetupSubPhase SetupStep `json:"setupSubPhase,omitempty"`
	CurrentPlayer string    `json:"currentPlayer"`
}

type Placement struct {
	PlayerID string `json:"playerId"`
	Target   string `json:"target"`
	Free     bool   `json:"free,omitempty"`
}

type DiceRolled struct {
	PlayerID string `json:"playerId"`
	Dice     [2]int `json:"dice"`
	Total    int    `json:"total"`
}

type Produced struct {
	Gains map[string]resource.Bundle `json:"gains"`
}

type RobberMoved struct {
	PlayerID string `json:"playerId"`
	TileID   int    `json:"tileId"`
	VictimID string `json:"victimId,omitempty"`
}

type ResourceStolen struct {
	ThiefID  string        `json:"thiefId"`
	VictimID string        `json:"victimId"`
	Kind     resource.Kind `json:"resource"`
}

type BankTrade struct {
	PlayerID string          `json:"playerId"`
	Give     resource.Bundle `json:"give"`
	Get      resource.Bundle `json:"get"`
}

type TradeCompleted struct {
	TradeID    int64           `json:"tradeId"`
	From       string          `json:"from"`
	AcceptedBy string          `json:"acceptedBy"`
	Give       resource.Bundle `json:"give"`
	Get        resource.Bundle `json:"get"`
}

// TradeClosed reasons.
const (
	ClosedCancelled = "cancelled"
	ClosedDeclined  = "declined"
	ClosedUnfunded  = "unfunded"
)

type TradeClosed struct {
	TradeID int64  `json:"tradeId"`
	Reason  string `json:"reason"`
	By      string `json:"by,omitempty"`
}

type DevCardBought struct {
	PlayerID string          `json:"playerId"`
	Kind     player.CardKind `json:"card,omitempty"`
	Left     int             `json:"left"`
}

type DevCardPlayed struct {
	PlayerID string          `json:"playerId"`
	Kind     player.CardKind `json:"card"`
}

// Bonus titles.
const (
	TitleLargestArmy = "LARGEST_ARMY"
	TitleLongestRoad = "LONGEST_ROAD"
)

type BonusAwarded struct {
	Title    string `json:"title"`
	Holder   string `json:"holder"`
	Previous string `json:"previous,omitempty"`
	Size     int    `json:"size"`
}

type TurnEnded struct {
	PlayerID string `json:"playerId"`
	Next     string `json:"next"`
}

type GameOverPayload struct {
	Winner     string `json:"winner"`
	WinnerName string `json:"winnerName"`
}

func broadcast(kind EventKind, payload any) Event {
	return Event{Kind: kind, Payload: payload}
}

func private(kind EventKind, payload any, to ...string) Event {
	return Event{Kind: kind, Payload: payload, Recipients: to}
}

// internal/game/actions.go
//
// Inbound action envelope and per-action payloads.
//
// Payloads arrive as raw JSON and are decoded by the handler that needs
// them; a payload that does not decode is rejected as invalid_target.

package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/robalobadob/hexsettlers/internal/resource"
)

// ActionType names an inbound action.
type ActionType string

const (
	ActStartGame       ActionType = "START_GAME"
	ActBuildSettlement ActionType = "BUILD_SETTLEMENT"
	ActBuildRoad       ActionType = "BUILD_ROAD"
	ActBuildCity       ActionType = "BUILD_CITY"
	ActRollDice        ActionType = "ROLL_DICE"
	ActMoveRobber      ActionType = "MOVE_ROBBER"
	ActOfferTrade      ActionType = "OFFER_TRADE"
	ActAcceptTrade     ActionType = "ACCEPT_TRADE"
	ActRejectTrade     ActionType = "REJECT_TRADE"
	ActBuyDevCard      ActionType = "BUY_DEV_CARD"
	ActPlayDevCard     ActionType = "PLAY_DEV_CARD"
	ActEndTurn         ActionType = "END_TURN"
	ActSendMessage     ActionType = "SEND_MESSAGE"
)

// Action is one request from a participant.
type Action struct {
	Type    ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewAction builds an Action with v encoded as the payload. Used by tests and
// tools; v must marshal.
func NewAction(t ActionType, v any) Action {
	a := Action{Type: t}
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		a.Payload = raw
	}
	return a
}

type intersectionPayload struct {
	IntersectionID string `json:"intersectionId"`
}

type edgePayload struct {
	EdgeID string `json:"edgeId"`
}

type robberPayload struct {
	TileID *int `json:"tileId"`
}

// OfferPayload is an OFFER_TRADE request. To is Bank, a player id, or empty
// for an open offer.
type OfferPayload struct {
	Give resource.Bundle `json:"give"`
	Get  resource.Bundle `json:"get"`
	To   string          `json:"to,omitempty"`
}

type tradeRefPayload struct {
	TradeID int64 `json:"tradeId"`
}

// CardTarget carries the choices of YEAR_OF_PLENTY and MONOPOLY.
type CardTarget struct {
	Resources []resource.Kind `json:"resources,omitempty"`
	Resource  resource.Kind   `json:"resource,omitempty"`
}

type playCardPayload struct {
	CardIndex *int       `json:"cardIndex"`
	Target    CardTarget `json:"target"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// decode unmarshals raw into v. An absent payload leaves v zeroed.
func decode(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

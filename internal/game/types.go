// internal/game/types.go
//
// Core type definitions for the rules engine.
// Defines:
//   - Stage: the tagged turn/phase state (Waiting, Setup, Playing,
//     RobberPlacement, GameOver) and its wire Phase name.
//   - TradeOffer, Bonus, ChatMessage: sub-records of the room state.
//   - State and Game: the authoritative per-room state.

package game

import (
	"time"

	"github.com/robalobadob/hexsettlers/internal/board"
	"github.com/robalobadob/hexsettlers/internal/player"
	"github.com/robalobadob/hexsettlers/internal/resource"
)

// Phase is the wire name of a Stage.
type Phase string

const (
	PhaseWaiting         Phase = "WAITING"
	PhaseSetupRound1     Phase = "SETUP_ROUND_1"
	PhaseSetupRound2     Phase = "SETUP_ROUND_2"
	PhasePlaying         Phase = "PLAYING"
	PhaseRobberPlacement Phase = "ROBBER_PLACEMENT"
	PhaseGameOver        Phase = "GAME_OVER"
)

// SetupStep is the placement expected within a setup turn.
type SetupStep string

const (
	StepSettlement SetupStep = "SETTLEMENT"
	StepRoad       SetupStep = "ROAD"
)

// Stage is one of Waiting, Setup, Playing, RobberPlacement or GameOver.
type Stage interface {
	Phase() Phase
	isStage()
}

type Waiting struct{}

// Setup is a snake-draft placement round (1 forward, 2 backward).
type Setup struct {
	Round int
	Step  SetupStep
}

type Playing struct{}

type RobberPlacement struct{}

// GameOver is absorbing.
type GameOver struct {
	Winner string
}

func (Waiting) Phase() Phase         { return PhaseWaiting }
func (Playing) Phase() Phase         { return PhasePlaying }
func (RobberPlacement) Phase() Phase { return PhaseRobberPlacement }
func (GameOver) Phase() Phase        { return PhaseGameOver }
func (s Setup) Phase() Phase {
	if s.Round == 2 {
		return PhaseSetupRound2
	}
	return PhaseSetupRound1
}

func (Waiting) isStage()         {}
func (Setup) isStage()           {}
func (Playing) isStage()         {}
func (RobberPlacement) isStage() {}
func (GameOver) isStage()        {}

// Bank is the trade target for fixed-ratio trades.
const Bank = "BANK"

// OpenOffer addresses a player offer to everyone; an empty To means the same.
const OpenOffer = "ALL"

// BankRatio is how many of one kind the bank takes per unit given.
const BankRatio = 4

// TradeOffer is the single pending player-to-player offer of a room.
// To is empty for an offer open to every other player.
type TradeOffer struct {
	ID         int64           `json:"id"`
	From       string          `json:"from"`
	To         string          `json:"to,omitempty"`
	Give       resource.Bundle `json:"give"`
	Get        resource.Bundle `json:"get"`
	Status     string          `json:"status"`
	DeclinedBy []string        `json:"declinedBy,omitempty"`
}

// Bonus is a contested 2-VP title. Size is the tally to beat.
type Bonus struct {
	Holder string `json:"holder,omitempty"`
	Size   int    `json:"size"`
}

// ChatMessage is one entry of the room chat log.
type ChatMessage struct {
	Sender     string `json:"sender"`
	ColorIndex int    `json:"colorIndex"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// Limits.
const (
	MaxPlayers       = 4
	MinPlayers       = 2
	WinPoints        = 10
	ChatHistory      = 50
	ChatMaxLength    = 200
	MaxRoads         = 15
	MaxSettlements   = 5
	MaxCities        = 4
	ArmyThreshold    = 2
	RoadThreshold    = 4
	BonusPoints      = 2
	FreeRoadsPerCard = 2
)

// State is the turn/phase bookkeeping of a room.
type State struct {
	Stage         Stage
	TurnIndex     int
	Turns         int
	CurrentPlayer string
	Dice          [2]int
	Rolled        bool
	FreeRoads     int
	TradeOffer    *TradeOffer
	Winner        string
	LargestArmy   Bonus
	LongestRoad   Bonus
	Chat          []ChatMessage

	// setupAnchor is the settlement placed in the current setup turn; the
	// setup road must touch it.
	setupAnchor string
}

// Rand is the randomness the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Game is the authoritative state of one room.
type Game struct {
	RoomID  string
	Board   *board.Board
	Players []*player.Player
	Deck    []player.CardKind
	State   State

	rng         Rand
	now         func() time.Time
	nextTradeID int64
}

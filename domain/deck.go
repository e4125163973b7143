package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// DeckScores is the ten-dimension breakdown produced by the analysis pipeline.
type DeckScores struct {
	Overall       int `json:"overall"`
	Problem       int `json:"problem"`
	Solution      int `json:"solution"`
	Market        int `json:"market"`
	Product       int `json:"product"`
	BusinessModel int `json:"business_model"`
	Competition   int `json:"competition"`
	Team          int `json:"team"`
	Financials    int `json:"financials"`
	Presentation  int `json:"presentation"`
}

type Deck struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	Filename   string     `json:"filename"`
	Timestamp  string     `json:"timestamp"`
	Verdict    string     `json:"verdict"`
	Scores     DeckScores `json:"scores"`
	Strengths  []string   `json:"strengths"`
	Weaknesses []string   `json:"weaknesses"`
	RedFlags   []string   `json:"red_flags"`
}

type DeckSummary struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Filename  string `json:"filename"`
	Verdict   string `json:"verdict"`
	Overall   int    `json:"overall"`
	Timestamp string `json:"timestamp"`
}

// DeckRow is the persisted form of a Deck. Semi-structured fields are kept
// as opaque JSON documents and only decoded by ToDeck.
type DeckRow struct {
	ID         uint           `gorm:"primaryKey;autoIncrement;column:id"`
	UserID     uint           `gorm:"not null;index;column:user_id"`
	Filename   string         `gorm:"type:text;not null;column:filename"`
	Timestamp  string         `gorm:"type:varchar(64);not null;column:timestamp"`
	Verdict    string         `gorm:"type:varchar(32);not null;column:verdict"`
	Scores     datatypes.JSON `gorm:"type:jsonb;not null;column:scores"`
	Strengths  datatypes.JSON `gorm:"type:jsonb;not null;column:strengths"`
	Weaknesses datatypes.JSON `gorm:"type:jsonb;not null;column:weaknesses"`
	RedFlags   datatypes.JSON `gorm:"type:jsonb;not null;column:red_flags"`
	User       User           `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (DeckRow) TableName() string { return "decks" }

func NewDeckRow(deck Deck) (DeckRow, error) {
	row := DeckRow{
		ID:        deck.ID,
		UserID:    deck.UserID,
		Filename:  deck.Filename,
		Timestamp: deck.Timestamp,
		Verdict:   deck.Verdict,
	}

	var err error
	if row.Scores, err = encodeJSON(deck.Scores); err != nil {
		return DeckRow{}, fmt.Errorf("encode scores: %w", err)
	}
	if row.Strengths, err = encodeJSON(nonNil(deck.Strengths)); err != nil {
		return DeckRow{}, fmt.Errorf("encode strengths: %w", err)
	}
	if row.Weaknesses, err = encodeJSON(nonNil(deck.Weaknesses)); err != nil {
		return DeckRow{}, fmt.Errorf("encode weaknesses: %w", err)
	}
	if row.RedFlags, err = encodeJSON(nonNil(deck.RedFlags)); err != nil {
		return DeckRow{}, fmt.Errorf("encode red_flags: %w", err)
	}
	return row, nil
}

func (r DeckRow) ToDeck() (Deck, error) {
	deck := Deck{
		ID:        r.ID,
		UserID:    r.UserID,
		Filename:  r.Filename,
		Timestamp: r.Timestamp,
		Verdict:   r.Verdict,
	}

	if err := json.Unmarshal(r.Scores, &deck.Scores); err != nil {
		return Deck{}, fmt.Errorf("decode scores of deck %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Strengths, &deck.Strengths); err != nil {
		return Deck{}, fmt.Errorf("decode strengths of deck %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Weaknesses, &deck.Weaknesses); err != nil {
		return Deck{}, fmt.Errorf("decode weaknesses of deck %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.RedFlags, &deck.RedFlags); err != nil {
		return Deck{}, fmt.Errorf("decode red_flags of deck %d: %w", r.ID, err)
	}
	deck.Strengths = nonNil(deck.Strengths)
	deck.Weaknesses = nonNil(deck.Weaknesses)
	deck.RedFlags = nonNil(deck.RedFlags)
	return deck, nil
}

func (d Deck) Summary() DeckSummary {
	return DeckSummary{
		ID:        d.ID,
		UserID:    d.UserID,
		Filename:  d.Filename,
		Verdict:   d.Verdict,
		Overall:   d.Scores.Overall,
		Timestamp: d.Timestamp,
	}
}

func encodeJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// DeckScoresRequest uses pointers so that a missing score can be told apart from a zero.
type DeckScoresRequest struct {
	Overall       *int `json:"overall" validate:"required,min=0,max=100"`
	Problem       *int `json:"problem" validate:"required,min=0,max=100"`
	Solution      *int `json:"solution" validate:"required,min=0,max=100"`
	Market        *int `json:"market" validate:"required,min=0,max=100"`
	Product       *int `json:"product" validate:"required,min=0,max=100"`
	BusinessModel *int `json:"business_model" validate:"required,min=0,max=100"`
	Competition   *int `json:"competition" validate:"required,min=0,max=100"`
	Team          *int `json:"team" validate:"required,min=0,max=100"`
	Financials    *int `json:"financials" validate:"required,min=0,max=100"`
	Presentation  *int `json:"presentation" validate:"required,min=0,max=100"`
}

func (s DeckScoresRequest) ToScores() DeckScores {
	return DeckScores{
		Overall:       deref(s.Overall),
		Problem:       deref(s.Problem),
		Solution:      deref(s.Solution),
		Market:        deref(s.Market),
		Product:       deref(s.Product),
		BusinessModel: deref(s.BusinessModel),
		Competition:   deref(s.Competition),
		Team:          deref(s.Team),
		Financials:    deref(s.Financials),
		Presentation:  deref(s.Presentation),
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

type CreateDeckRequest struct {
	UserID     uint               `json:"user_id" validate:"required"`
	Filename   string             `json:"filename" validate:"required,max=512"`
	Timestamp  string             `json:"timestamp" validate:"required,timestamp"`
	Verdict    string             `json:"verdict" validate:"required,max=32"`
	Scores     *DeckScoresRequest `json:"scores" validate:"required"`
	Strengths  []string           `json:"strengths" validate:"required"`
	Weaknesses []string           `json:"weaknesses" validate:"required"`
	RedFlags   []string           `json:"red_flags" validate:"required"`
}

type DeckRepository interface {
	CreateDeck(ctx context.Context, deck *Deck) error
	GetDeck(ctx context.Context, id uint) (*Deck, error)
	GetDecksByUser(ctx context.Context, userID uint) ([]Deck, error)
	ListRecentDecks(ctx context.Context, limit int) ([]Deck, error)
}

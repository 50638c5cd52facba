package game

import (
	"encoding/json"
	"time"
)

// Envelope is the wire shape of a submitted move: a type tag plus the
// type-specific fields, which each engine decodes itself.
type Envelope struct {
	MoveType string          `json:"moveType"`
	Payload  json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the whole body around so engines can decode their
// own payload struct from it.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var head struct {
		MoveType string `json:"moveType"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	e.MoveType = head.MoveType
	e.Payload = append(e.Payload[:0], b...)
	return nil
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if len(e.Payload) > 0 {
		return e.Payload, nil
	}
	return json.Marshal(struct {
		MoveType string `json:"moveType"`
	}{e.MoveType})
}

// Decode fills dst from the envelope body.
func (e Envelope) Decode(dst interface{}) error {
	if len(e.Payload) == 0 {
		return ErrBadRequest
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return ErrBadRequest
	}
	return nil
}

// Move is one accepted move, appended to the game's log and never edited.
type Move struct {
	GameID   string          `json:"gameId"`
	Seq      int             `json:"seq"`
	Seat     int             `json:"seat"`
	Player   string          `json:"player"`
	MoveType string          `json:"moveType"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	PlayedAt time.Time       `json:"playedAt"`
}

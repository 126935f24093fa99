package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// Die is the wire form of a catalog die
type Die struct {
	Sides    int    `json:"sides"`
	Acronym  string `json:"acronym"`
	Standard bool   `json:"standard,omitempty"`
}

// RollRecord is the wire form of a history entry
type RollRecord struct {
	ID          string `json:"id"`
	Roll        int    `json:"roll"`
	DieType     string `json:"die_type"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// DieRolls is the wire form of one die type's results in a multi-roll
type DieRolls struct {
	Die      Die   `json:"die"`
	Values   []int `json:"values"`
	Subtotal int   `json:"subtotal"`
}

// ListDiceRequest lists the catalog
type ListDiceRequest struct{}

// ListDiceResponse carries the catalog and selection
type ListDiceResponse struct {
	Dice     []Die `json:"dice"`
	Selected Die   `json:"selected"`
}

// SelectDieRequest selects a die by acronym
type SelectDieRequest struct {
	Acronym string `json:"acronym"`
}

// SelectDieResponse carries the new selection
type SelectDieResponse struct {
	Selected Die `json:"selected"`
}

// AddCustomDieRequest adds a custom die
type AddCustomDieRequest struct {
	Sides   int    `json:"sides"`
	Acronym string `json:"acronym"`
}

// AddCustomDieResponse carries the stored die
type AddCustomDieResponse struct {
	Die Die `json:"die"`
}

// RemoveDieRequest removes a custom die
type RemoveDieRequest struct {
	Acronym string `json:"acronym"`
}

// RemoveDieResponse carries the removed die and the selection afterwards
type RemoveDieResponse struct {
	Removed  Die `json:"removed"`
	Selected Die `json:"selected"`
}

// RollSelectedRequest rolls the selected die
type RollSelectedRequest struct {
	Record bool `json:"record,omitempty"`
}

// RollSelectedResponse carries the roll and, when recorded, its history entry
type RollSelectedResponse struct {
	Die          Die         `json:"die"`
	Value        int         `json:"value"`
	Record       *RollRecord `json:"record,omitempty"`
	HistoryError string      `json:"history_error,omitempty"`
}

// RollManyRequest rolls several dice types at once
type RollManyRequest struct {
	Quantities map[string]int `json:"quantities"`
}

// RollManyResponse carries per-die results and the grand total
type RollManyResponse struct {
	Results []DieRolls `json:"results"`
	Total   int        `json:"total"`
}

// ListHistoryRequest reads the history log
type ListHistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListHistoryResponse carries history entries newest first
type ListHistoryResponse struct {
	Records []RollRecord `json:"records"`
}

// DeleteHistoryEntryRequest deletes one history entry
type DeleteHistoryEntryRequest struct {
	ID string `json:"id"`
}

// DeleteHistoryEntryResponse is empty
type DeleteHistoryEntryResponse struct{}

// ClearHistoryRequest clears the history log
type ClearHistoryRequest struct{}

// ClearHistoryResponse reports how many entries were removed
type ClearHistoryResponse struct {
	Deleted int `json:"deleted"`
}

// encode turns a wire message into a protobuf Struct
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert message to struct")
	}
	return out, nil
}

// decode fills a wire message from a protobuf Struct, rejecting unknown fields
func decode(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// Package v1alpha1 serves the dice roller over gRPC
package v1alpha1

import (
	"context"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dice-roller/internal/entities"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/roller"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService roller.Service
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler implements DiceServiceServer
type DiceHandler struct {
	diceService roller.Service
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
	}, nil
}

var _ DiceServiceServer = (*DiceHandler)(nil)

// ListDice returns the catalog and the current selection
func (h *DiceHandler) ListDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListDiceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.ListDice(ctx, &roller.ListDiceInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	dice := make([]Die, 0, len(out.Dice))
	for _, d := range out.Dice {
		dice = append(dice, Die{Sides: d.Die.Sides, Acronym: d.Die.Acronym, Standard: d.Standard})
	}

	return respond(&ListDiceResponse{
		Dice:     dice,
		Selected: toDie(out.Selected),
	})
}

// SelectDie selects a die by acronym
func (h *DiceHandler) SelectDie(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SelectDieRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if strings.TrimSpace(in.Acronym) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("acronym is required"))
	}

	out, err := h.diceService.SelectDie(ctx, &roller.SelectDieInput{Acronym: in.Acronym})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&SelectDieResponse{Selected: toDie(out.Selected)})
}

// AddCustomDie adds a custom die
func (h *DiceHandler) AddCustomDie(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in AddCustomDieRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if strings.TrimSpace(in.Acronym) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("acronym is required"))
	}
	if in.Sides <= 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("sides must be positive, got %d", in.Sides))
	}

	out, err := h.diceService.AddCustomDie(ctx, &roller.AddCustomDieInput{
		Sides:   in.Sides,
		Acronym: in.Acronym,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&AddCustomDieResponse{Die: toDie(out.Die)})
}

// RemoveDie removes a custom die
func (h *DiceHandler) RemoveDie(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in RemoveDieRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if strings.TrimSpace(in.Acronym) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("acronym is required"))
	}

	out, err := h.diceService.RemoveDie(ctx, &roller.RemoveDieInput{Acronym: in.Acronym})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&RemoveDieResponse{
		Removed:  toDie(out.Removed),
		Selected: toDie(out.Selected),
	})
}

// RollSelected rolls the selected die
func (h *DiceHandler) RollSelected(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in RollSelectedRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.RollSelected(ctx, &roller.RollSelectedInput{Record: in.Record})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &RollSelectedResponse{
		Die:          toDie(out.Die),
		Value:        out.Value,
		HistoryError: out.HistoryError,
	}
	if out.Record != nil {
		record := toRecord(out.Record)
		resp.Record = &record
	}

	return respond(resp)
}

// RollMany rolls several dice types at once
func (h *DiceHandler) RollMany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in RollManyRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if len(in.Quantities) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("quantities is required"))
	}

	out, err := h.diceService.RollMany(ctx, &roller.RollManyInput{Quantities: in.Quantities})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	results := make([]DieRolls, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, DieRolls{
			Die:      toDie(r.Die),
			Values:   r.Values,
			Subtotal: r.Subtotal,
		})
	}

	return respond(&RollManyResponse{
		Results: results,
		Total:   out.Total,
	})
}

// ListHistory returns recorded rolls newest first
func (h *DiceHandler) ListHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListHistoryRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.ListHistory(ctx, &roller.ListHistoryInput{Limit: in.Limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	records := make([]RollRecord, 0, len(out.Records))
	for _, r := range out.Records {
		records = append(records, toRecord(r))
	}

	return respond(&ListHistoryResponse{Records: records})
}

// DeleteHistoryEntry deletes one recorded roll
func (h *DiceHandler) DeleteHistoryEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in DeleteHistoryEntryRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	if _, err := h.diceService.DeleteHistoryEntry(ctx, &roller.DeleteHistoryEntryInput{ID: in.ID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DeleteHistoryEntryResponse{})
}

// ClearHistory removes every recorded roll
func (h *DiceHandler) ClearHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ClearHistoryRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.ClearHistory(ctx, &roller.ClearHistoryInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ClearHistoryResponse{Deleted: out.Deleted})
}

func respond(v any) (*structpb.Struct, error) {
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func toDie(d entities.Die) Die {
	return Die{Sides: d.Sides, Acronym: d.Acronym}
}

func toRecord(r *rollhistory.RollRecord) RollRecord {
	return RollRecord{
		ID:          r.ID,
		Roll:        r.Roll,
		DieType:     r.DieType,
		TimestampMs: r.Timestamp.UnixMilli(),
	}
}

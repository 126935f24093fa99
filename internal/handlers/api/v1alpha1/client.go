package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// DiceClient calls DiceService and decodes responses into wire types
type DiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiceClient creates a client on an existing connection
func NewDiceClient(cc grpc.ClientConnInterface) *DiceClient {
	return &DiceClient{cc: cc}
}

// ListDice returns the catalog and selection
func (c *DiceClient) ListDice(ctx context.Context) (*ListDiceResponse, error) {
	out := &ListDiceResponse{}
	return out, c.call(ctx, MethodListDice, &ListDiceRequest{}, out)
}

// SelectDie selects a die by acronym
func (c *DiceClient) SelectDie(ctx context.Context, req *SelectDieRequest) (*SelectDieResponse, error) {
	out := &SelectDieResponse{}
	return out, c.call(ctx, MethodSelectDie, req, out)
}

// AddCustomDie adds a custom die
func (c *DiceClient) AddCustomDie(ctx context.Context, req *AddCustomDieRequest) (*AddCustomDieResponse, error) {
	out := &AddCustomDieResponse{}
	return out, c.call(ctx, MethodAddCustomDie, req, out)
}

// RemoveDie removes a custom die
func (c *DiceClient) RemoveDie(ctx context.Context, req *RemoveDieRequest) (*RemoveDieResponse, error) {
	out := &RemoveDieResponse{}
	return out, c.call(ctx, MethodRemoveDie, req, out)
}

// RollSelected rolls the selected die
func (c *DiceClient) RollSelected(ctx context.Context, req *RollSelectedRequest) (*RollSelectedResponse, error) {
	out := &RollSelectedResponse{}
	return out, c.call(ctx, MethodRollSelected, req, out)
}

// RollMany rolls several dice types at once
func (c *DiceClient) RollMany(ctx context.Context, req *RollManyRequest) (*RollManyResponse, error) {
	out := &RollManyResponse{}
	return out, c.call(ctx, MethodRollMany, req, out)
}

// ListHistory reads the history log
func (c *DiceClient) ListHistory(ctx context.Context, req *ListHistoryRequest) (*ListHistoryResponse, error) {
	out := &ListHistoryResponse{}
	return out, c.call(ctx, MethodListHistory, req, out)
}

// DeleteHistoryEntry deletes one history entry
func (c *DiceClient) DeleteHistoryEntry(ctx context.Context, req *DeleteHistoryEntryRequest) error {
	return c.call(ctx, MethodDeleteHistoryEntry, req, &DeleteHistoryEntryResponse{})
}

// ClearHistory clears the history log
func (c *DiceClient) ClearHistory(ctx context.Context) (*ClearHistoryResponse, error) {
	out := &ClearHistoryResponse{}
	return out, c.call(ctx, MethodClearHistory, &ClearHistoryRequest{}, out)
}

// call invokes method and maps gRPC failures back to coded errors
func (c *DiceClient) call(ctx context.Context, method string, req, resp any) error {
	in, err := encode(req)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	if err := decode(out, resp); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	return nil
}

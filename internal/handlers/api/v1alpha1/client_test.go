package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/dice-roller/internal/catalog"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-roller/internal/pkg/rng"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
	"github.com/KirkDiggler/dice-roller/internal/testutils"
)

const bufSize = 1024 * 1024

// DiceClientTestSuite runs the typed client against a real server over bufconn
type DiceClientTestSuite struct {
	suite.Suite
	listener *bufconn.Listener
	server   *grpc.Server
	conn     *grpc.ClientConn
	client   *v1alpha1.DiceClient
	clock    *clock.Manual
	ctx      context.Context
}

func TestDiceClientTestSuite(t *testing.T) {
	suite.Run(t, new(DiceClientTestSuite))
}

func (s *DiceClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(testutils.FixedStart)

	m, err := catalog.NewManager(&catalog.Config{
		Roller:   rng.NewSeeded(42),
		EventBus: events.NewBus(),
		Logger:   testutils.DiscardLogger(),
	})
	s.Require().NoError(err)

	repo, err := rollhistory.NewMemory(&rollhistory.MemoryConfig{
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("roll"),
	})
	s.Require().NoError(err)

	svc, err := roller.NewOrchestrator(&roller.Config{
		Catalog:     m,
		HistoryRepo: repo,
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{DiceService: svc})
	s.Require().NoError(err)

	s.listener = bufconn.Listen(bufSize)
	s.server = grpc.NewServer()
	v1alpha1.RegisterDiceServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(s.listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = v1alpha1.NewDiceClient(conn)
}

func (s *DiceClientTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *DiceClientTestSuite) TestListDice_Defaults() {
	resp, err := s.client.ListDice(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(resp.Dice, 6)
	acronyms := make([]string, 0, len(resp.Dice))
	for _, d := range resp.Dice {
		acronyms = append(acronyms, d.Acronym)
		s.True(d.Standard)
	}
	s.Equal([]string{"d4", "d6", "d8", "d10", "d12", "d20"}, acronyms)
	s.Equal(v1alpha1.Die{Sides: 6, Acronym: "d6"}, resp.Selected)
}

func (s *DiceClientTestSuite) TestCustomDieLifecycle() {
	added, err := s.client.AddCustomDie(s.ctx, &v1alpha1.AddCustomDieRequest{Sides: 3, Acronym: "d3"})
	s.Require().NoError(err)
	s.Equal(v1alpha1.Die{Sides: 3, Acronym: "d3"}, added.Die)

	_, err = s.client.AddCustomDie(s.ctx, &v1alpha1.AddCustomDieRequest{Sides: 4, Acronym: "D3"})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))

	selected, err := s.client.SelectDie(s.ctx, &v1alpha1.SelectDieRequest{Acronym: "d3"})
	s.Require().NoError(err)
	s.Equal("d3", selected.Selected.Acronym)

	for range 20 {
		roll, err := s.client.RollSelected(s.ctx, &v1alpha1.RollSelectedRequest{})
		s.Require().NoError(err)
		s.GreaterOrEqual(roll.Value, 1)
		s.LessOrEqual(roll.Value, 3)
		s.Nil(roll.Record)
	}

	removed, err := s.client.RemoveDie(s.ctx, &v1alpha1.RemoveDieRequest{Acronym: "d3"})
	s.Require().NoError(err)
	s.Equal("d3", removed.Removed.Acronym)
	s.Equal("d6", removed.Selected.Acronym)

	list, err := s.client.ListDice(s.ctx)
	s.Require().NoError(err)
	s.Len(list.Dice, 6)
}

func (s *DiceClientTestSuite) TestRemoveStandardDie() {
	_, err := s.client.RemoveDie(s.ctx, &v1alpha1.RemoveDieRequest{Acronym: "d4"})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.client.RemoveDie(s.ctx, &v1alpha1.RemoveDieRequest{Acronym: "d99"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *DiceClientTestSuite) TestRollMany() {
	resp, err := s.client.RollMany(s.ctx, &v1alpha1.RollManyRequest{
		Quantities: map[string]int{"d20": 1, "d6": 3},
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 2)

	s.Equal("d6", resp.Results[0].Die.Acronym)
	s.Len(resp.Results[0].Values, 3)
	s.Equal("d20", resp.Results[1].Die.Acronym)
	s.Len(resp.Results[1].Values, 1)

	total := 0
	for _, r := range resp.Results {
		sum := 0
		for _, v := range r.Values {
			s.GreaterOrEqual(v, 1)
			s.LessOrEqual(v, r.Die.Sides)
			sum += v
		}
		s.Equal(sum, r.Subtotal)
		total += sum
	}
	s.Equal(total, resp.Total)
}

func (s *DiceClientTestSuite) TestHistory() {
	first, err := s.client.RollSelected(s.ctx, &v1alpha1.RollSelectedRequest{Record: true})
	s.Require().NoError(err)
	s.Require().NotNil(first.Record)
	s.Equal("roll_1", first.Record.ID)
	s.Equal(first.Value, first.Record.Roll)
	s.Equal("d6", first.Record.DieType)
	s.Equal(testutils.FixedStart.UnixMilli(), first.Record.TimestampMs)

	s.clock.Advance(time.Second)
	second, err := s.client.RollSelected(s.ctx, &v1alpha1.RollSelectedRequest{Record: true})
	s.Require().NoError(err)
	s.Require().NotNil(second.Record)

	history, err := s.client.ListHistory(s.ctx, &v1alpha1.ListHistoryRequest{})
	s.Require().NoError(err)
	s.Require().Len(history.Records, 2)
	s.Equal(second.Record.ID, history.Records[0].ID)
	s.Equal(first.Record.ID, history.Records[1].ID)

	limited, err := s.client.ListHistory(s.ctx, &v1alpha1.ListHistoryRequest{Limit: 1})
	s.Require().NoError(err)
	s.Len(limited.Records, 1)

	s.Require().NoError(s.client.DeleteHistoryEntry(s.ctx, &v1alpha1.DeleteHistoryEntryRequest{ID: first.Record.ID}))

	err = s.client.DeleteHistoryEntry(s.ctx, &v1alpha1.DeleteHistoryEntryRequest{ID: first.Record.ID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	cleared, err := s.client.ClearHistory(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, cleared.Deleted)

	history, err = s.client.ListHistory(s.ctx, &v1alpha1.ListHistoryRequest{})
	s.Require().NoError(err)
	s.Empty(history.Records)
}

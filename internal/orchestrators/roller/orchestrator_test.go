package roller_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dice-roller/internal/catalog"
	"github.com/KirkDiggler/dice-roller/internal/entities"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/dice-roller/internal/pkg/rng"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
	rollhistorymock "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history/mock"
	"github.com/KirkDiggler/dice-roller/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *rollhistorymock.MockRepository
	catalog      *catalog.Manager
	orchestrator roller.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = rollhistorymock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	m, err := catalog.NewManager(&catalog.Config{
		Roller:   rng.NewSeeded(99),
		EventBus: events.NewBus(),
		Logger:   testutils.DiscardLogger(),
	})
	s.Require().NoError(err)
	s.catalog = m

	o, err := roller.NewOrchestrator(&roller.Config{
		Catalog:     m,
		HistoryRepo: s.mockRepo,
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := roller.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = roller.NewOrchestrator(&roller.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Catalog: is required")
	s.Contains(err.Error(), "HistoryRepo: is required")
}

func (s *OrchestratorTestSuite) TestListDice() {
	s.Require().True(s.catalog.AddCustomDie(3, "d3"))

	out, err := s.orchestrator.ListDice(s.ctx, &roller.ListDiceInput{})
	s.Require().NoError(err)

	s.Require().Len(out.Dice, 7)
	s.True(out.Dice[0].Standard)
	s.Equal("d3", out.Dice[6].Die.Acronym)
	s.False(out.Dice[6].Standard)
	s.Equal("d6", out.Selected.Acronym)
}

func (s *OrchestratorTestSuite) TestSelectDie() {
	testCases := []struct {
		name     string
		acronym  string
		wantCode errors.Code
		want     string
	}{
		{name: "exact", acronym: "d20", want: "d20"},
		{name: "other case", acronym: "D8", want: "d8"},
		{name: "unknown", acronym: "d7", wantCode: errors.CodeNotFound},
		{name: "blank", acronym: " ", wantCode: errors.CodeInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.SelectDie(s.ctx, &roller.SelectDieInput{Acronym: tc.acronym})
			if tc.wantCode != "" {
				s.Require().Error(err)
				s.Equal(tc.wantCode, errors.GetCode(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.want, out.Selected.Acronym)
			s.Equal(tc.want, s.catalog.Selected().Acronym)
		})
	}
}

func (s *OrchestratorTestSuite) TestAddCustomDie() {
	testCases := []struct {
		name     string
		input    *roller.AddCustomDieInput
		wantCode errors.Code
	}{
		{name: "valid", input: &roller.AddCustomDieInput{Sides: 3, Acronym: "d3"}},
		{name: "zero sides", input: &roller.AddCustomDieInput{Sides: 0, Acronym: "x"}, wantCode: errors.CodeInvalidArgument},
		{name: "blank acronym", input: &roller.AddCustomDieInput{Sides: 5, Acronym: ""}, wantCode: errors.CodeInvalidArgument},
		{name: "duplicate", input: &roller.AddCustomDieInput{Sides: 7, Acronym: "D6"}, wantCode: errors.CodeAlreadyExists},
		{name: "nil input", input: nil, wantCode: errors.CodeInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()

			out, err := s.orchestrator.AddCustomDie(s.ctx, tc.input)
			if tc.wantCode != "" {
				s.Require().Error(err)
				s.Equal(tc.wantCode, errors.GetCode(err))
				s.Len(s.catalog.Dice(), 6)
				return
			}
			s.Require().NoError(err)
			s.Equal(entities.Die{Sides: 3, Acronym: "d3"}, out.Die)
			s.Len(s.catalog.Dice(), 7)
		})
	}
}

func (s *OrchestratorTestSuite) TestRemoveDie() {
	s.Require().True(s.catalog.AddCustomDie(3, "d3"))
	_, err := s.orchestrator.SelectDie(s.ctx, &roller.SelectDieInput{Acronym: "d3"})
	s.Require().NoError(err)

	_, err = s.orchestrator.RemoveDie(s.ctx, &roller.RemoveDieInput{Acronym: "d6"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.RemoveDie(s.ctx, &roller.RemoveDieInput{Acronym: "d9"})
	s.True(errors.IsNotFound(err))

	out, err := s.orchestrator.RemoveDie(s.ctx, &roller.RemoveDieInput{Acronym: "D3"})
	s.Require().NoError(err)
	s.Equal("d3", out.Removed.Acronym)
	s.Equal("d6", out.Selected.Acronym)
	s.Len(s.catalog.Dice(), 6)
}

func (s *OrchestratorTestSuite) TestRollSelectedWithoutRecording() {
	out, err := s.orchestrator.RollSelected(s.ctx, &roller.RollSelectedInput{})
	s.Require().NoError(err)

	s.Equal("d6", out.Die.Acronym)
	s.GreaterOrEqual(out.Value, 1)
	s.LessOrEqual(out.Value, 6)
	s.Nil(out.Record)
	s.Empty(out.HistoryError)
}

func (s *OrchestratorTestSuite) TestRollSelectedRecords() {
	_, err := s.orchestrator.SelectDie(s.ctx, &roller.SelectDieInput{Acronym: "d20"})
	s.Require().NoError(err)

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input rollhistory.CreateInput) (*rollhistory.CreateOutput, error) {
			s.Equal("d20", input.DieType)
			s.GreaterOrEqual(input.Roll, 1)
			s.LessOrEqual(input.Roll, 20)
			return &rollhistory.CreateOutput{
				Record: &rollhistory.RollRecord{ID: "roll_1", Roll: input.Roll, DieType: input.DieType},
			}, nil
		})

	out, err := s.orchestrator.RollSelected(s.ctx, &roller.RollSelectedInput{Record: true})
	s.Require().NoError(err)
	s.Require().NotNil(out.Record)
	s.Equal("roll_1", out.Record.ID)
	s.Equal(out.Value, out.Record.Roll)
}

func (s *OrchestratorTestSuite) TestRollSelectedHistoryFailureKeepsRoll() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Wrap(fmt.Errorf("connection refused"), "failed to store roll record in Redis"))

	out, err := s.orchestrator.RollSelected(s.ctx, &roller.RollSelectedInput{Record: true})
	s.Require().NoError(err)

	s.GreaterOrEqual(out.Value, 1)
	s.LessOrEqual(out.Value, 6)
	s.Nil(out.Record)
	s.Equal("failed to store roll record in Redis", out.HistoryError)
}

func (s *OrchestratorTestSuite) TestRollMany() {
	out, err := s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{
		Quantities: map[string]int{"d20": 1, "D6": 3, "d4": 0},
	})
	s.Require().NoError(err)

	s.Require().Len(out.Results, 2)
	s.Equal("d6", out.Results[0].Die.Acronym)
	s.Len(out.Results[0].Values, 3)
	s.Equal("d20", out.Results[1].Die.Acronym)
	s.Len(out.Results[1].Values, 1)

	total := 0
	for _, r := range out.Results {
		sum := 0
		for _, v := range r.Values {
			s.GreaterOrEqual(v, 1)
			s.LessOrEqual(v, r.Die.Sides)
			sum += v
		}
		s.Equal(sum, r.Subtotal)
		total += sum
	}
	s.Equal(total, out.Total)
}

func (s *OrchestratorTestSuite) TestRollManyErrors() {
	_, err := s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{Quantities: map[string]int{"d6": 0}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{Quantities: map[string]int{"d7": 1}})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRollManyQuantityLimits() {
	testCases := []struct {
		name       string
		quantities map[string]int
	}{
		{name: "huge quantity", quantities: map[string]int{"d6": 1 << 50}},
		{name: "max int", quantities: map[string]int{"d6": int(^uint(0) >> 1)}},
		{name: "one over the per die cap", quantities: map[string]int{"d6": roller.MaxRollQuantity + 1}},
		{
			name:       "same die in two cases",
			quantities: map[string]int{"d6": roller.MaxRollQuantity, "D6": roller.MaxRollQuantity},
		},
		{
			name: "over the total cap",
			quantities: map[string]int{
				"d4": 1000, "d6": 1000, "d8": 1000, "d10": 1000, "d12": 1000, "d20": 1,
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{Quantities: tc.quantities})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Nil(out)
		})
	}

	out, err := s.orchestrator.RollMany(s.ctx, &roller.RollManyInput{
		Quantities: map[string]int{"d6": roller.MaxRollQuantity},
	})
	s.Require().NoError(err)
	s.Len(out.Results[0].Values, roller.MaxRollQuantity)
}

func (s *OrchestratorTestSuite) TestListHistory() {
	records := []*rollhistory.RollRecord{
		{ID: "roll_2", Roll: 5, DieType: "d6"},
		{ID: "roll_1", Roll: 2, DieType: "d6"},
	}
	s.mockRepo.EXPECT().
		List(s.ctx, rollhistory.ListInput{Limit: 10}).
		Return(&rollhistory.ListOutput{Records: records}, nil)

	out, err := s.orchestrator.ListHistory(s.ctx, &roller.ListHistoryInput{Limit: 10})
	s.Require().NoError(err)
	s.Equal(records, out.Records)

	_, err = s.orchestrator.ListHistory(s.ctx, &roller.ListHistoryInput{Limit: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteHistoryEntry() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, rollhistory.DeleteInput{ID: "roll_1"}).
		Return(&rollhistory.DeleteOutput{}, nil)
	s.mockRepo.EXPECT().
		Delete(s.ctx, rollhistory.DeleteInput{ID: "missing"}).
		Return(nil, errors.NotFound("roll missing not found"))

	_, err := s.orchestrator.DeleteHistoryEntry(s.ctx, &roller.DeleteHistoryEntryInput{ID: "roll_1"})
	s.NoError(err)

	_, err = s.orchestrator.DeleteHistoryEntry(s.ctx, &roller.DeleteHistoryEntryInput{ID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.DeleteHistoryEntry(s.ctx, &roller.DeleteHistoryEntryInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestClearHistory() {
	s.mockRepo.EXPECT().Clear(s.ctx).Return(&rollhistory.ClearOutput{Deleted: 4}, nil)

	out, err := s.orchestrator.ClearHistory(s.ctx, &roller.ClearHistoryInput{})
	s.Require().NoError(err)
	s.Equal(4, out.Deleted)
}

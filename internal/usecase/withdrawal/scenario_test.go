package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
	parentusecase "github.com/LavaJover/shvark-withdrawal-service/internal/usecase"
	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
	"github.com/stretchr/testify/require"
)

// Walks the full review flow: two agents in rotation, one goes away and
// loses their assignment, a supervisor hands the released request over,
// and the receiving agent rejects it.
func TestReviewFlowEndToEnd(t *testing.T) {
	env := newTestEnv(onlineAgent("a"), onlineAgent("b"), supervisor("sup"))
	ctx := context.Background()
	reviewerUc := parentusecase.NewDefaultReviewerUsecase(
		env.reviewers, env.withdrawal, env.transfers, env.rotation, testMetrics)

	require.NoError(t, env.rotation.Push(ctx, "a"))
	require.NoError(t, env.rotation.Push(ctx, "b"))

	r1, err := env.uc.Submit(ctx, submitInput("p1"))
	require.NoError(t, err)
	require.Equal(t, "a", *r1.AssignedTo)

	r2, err := env.uc.Submit(ctx, submitInput("p2"))
	require.NoError(t, err)
	require.Equal(t, "b", *r2.AssignedTo)

	// a steps away: dropped from rotation, r1 force-released to the pool
	require.NoError(t, reviewerUc.SetAvailability(ctx, "a", "a", domain.AvailabilityAway))

	queued, err := env.rotation.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, queued)

	stored, err := env.withdrawal.GetWithdrawalByID(r1.WithdrawalID)
	require.NoError(t, err)
	require.Nil(t, stored.AssigneeID)

	records, err := env.transfers.History(r1.WithdrawalID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Nil(t, records[1].TransferredBy)
	require.Nil(t, records[1].TransferredTo)

	// supervisor hands the released request to b
	require.NoError(t, env.uc.Claim(ctx, r1.WithdrawalID, "sup", "b"))

	records, err = env.transfers.History(r1.WithdrawalID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "sup", *records[2].TransferredBy)
	require.Equal(t, "b", *records[2].TransferredTo)

	require.NoError(t, env.uc.Conclude(ctx, r1.WithdrawalID, "b", &withdrawaldto.ConcludeWithdrawalInput{
		Decision: withdrawaldto.DecisionReject,
		Reason:   "coklu_hesap",
	}))

	stored, err = env.withdrawal.GetWithdrawalByID(r1.WithdrawalID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, stored.Status)
	require.NotNil(t, stored.ConcludedAt)
	require.Equal(t, "coklu_hesap", *stored.RejectReason)

	require.Len(t, env.stats.conclusions, 1)
	require.Equal(t, "b", env.stats.conclusions[0].reviewerID)
	require.Equal(t, domain.OutcomeRejected, env.stats.conclusions[0].outcome)
	require.Equal(t, int64(1), env.stats.rejectReasons["coklu_hesap"])

	ok, err := env.uc.VerifyLedger(ctx, r1.WithdrawalID)
	require.NoError(t, err)
	require.True(t, ok)

	// terminal state rejects every further transition
	require.ErrorIs(t, env.uc.Claim(ctx, r1.WithdrawalID, "a", ""), domain.ErrAlreadyConcluded)
	require.ErrorIs(t, env.uc.Transfer(ctx, r1.WithdrawalID, "sup", "a"), domain.ErrAlreadyConcluded)
	require.ErrorIs(t, env.uc.Unassign(ctx, r1.WithdrawalID, "sup"), domain.ErrAlreadyConcluded)
	require.ErrorIs(t, env.uc.Conclude(ctx, r1.WithdrawalID, "b", &withdrawaldto.ConcludeWithdrawalInput{
		Decision: withdrawaldto.DecisionApprove,
	}), domain.ErrAlreadyConcluded)
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	agents := []*domain.Reviewer{
		onlineAgent("a1"), onlineAgent("a2"), onlineAgent("a3"),
		onlineAgent("a4"), onlineAgent("a5"),
	}
	env := newTestEnv(agents...)
	id := submitUnassigned(t, env)

	var wg sync.WaitGroup
	wins := make(chan string, len(agents))
	for _, agent := range agents {
		wg.Add(1)
		go func(actorID string) {
			defer wg.Done()
			if err := env.uc.Claim(context.Background(), id, actorID, ""); err == nil {
				wins <- actorID
			}
		}(agent.ID)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for winner := range wins {
		winners = append(winners, winner)
	}
	require.Len(t, winners, 1)

	stored, err := env.withdrawal.GetWithdrawalByID(id)
	require.NoError(t, err)
	require.True(t, stored.AssignedTo(winners[0]))

	records, err := env.transfers.History(id)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

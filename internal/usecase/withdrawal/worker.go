package usecase

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"time"

	withdrawaldto "github.com/LavaJover/shvark-withdrawal-service/internal/usecase/dto/withdrawal"
)

type withdrawalRequestMessage struct {
	PlayerID       string    `json:"player_id"`
	ExternalRef    string    `json:"external_ref"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Method         string    `json:"method"`
	Note           string    `json:"note"`
	AdditionalInfo string    `json:"additional_info"`
	RequestedAt    time.Time `json:"requested_at"`
}

// StartRequestConsumer pulls withdrawal requests submitted by the upstream
// payment pipeline through Kafka and feeds them into Submit.
func (uc *DefaultWithdrawalUsecase) StartRequestConsumer(ctx context.Context) {
	messages, err := uc.Subscriber.Subscribe(uc.RequestsTopic, uc.GroupID)
	if err != nil {
		log.Printf("failed to subscribe to %s: %v", uc.RequestsTopic, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				slog.Error("withdrawal request stream closed", "topic", uc.RequestsTopic)
				return
			}

			var request withdrawalRequestMessage
			if err := json.Unmarshal(msg.Value, &request); err != nil {
				slog.Error("failed to decode withdrawal request", "error", err.Error())
				uc.Metrics.RecordError("request_decode")
				continue
			}

			output, err := uc.Submit(ctx, &withdrawaldto.SubmitWithdrawalInput{
				PlayerID:       request.PlayerID,
				ExternalRef:    request.ExternalRef,
				Amount:         request.Amount,
				Currency:       request.Currency,
				Method:         request.Method,
				Note:           request.Note,
				AdditionalInfo: request.AdditionalInfo,
				RequestedAt:    request.RequestedAt,
			})
			if err != nil {
				slog.Error("failed to submit withdrawal from stream", "error", err.Error())
				uc.Metrics.RecordError("request_submit")
				continue
			}
			slog.Info("withdrawal submitted from stream",
				"withdrawal_id", output.WithdrawalID,
				"assigned", output.AssignedTo != nil)
		}
	}
}

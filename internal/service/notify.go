package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/repae-esatic/gateway"
)

// NotifyService fans platform events (new candidature, published offer,
// member notification) out to realtime listeners over redis pub/sub.
type NotifyService struct {
	rdb *redis.Client
}

func NewNotifyService(redisClient *redis.Client) *NotifyService {
	return &NotifyService{
		rdb: redisClient,
	}
}

func (s *NotifyService) Publish(ctx context.Context, channel string, signal repae.Signal) error {

	jsonstr, err := json.Marshal(signal)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime pumps signals for the subscribed channels into output until
// ctx ends or input is closed. Writing a channel list to input replaces
// the subscription. Output sends are abandoned when ctx ends, so a
// consumer that stopped reading never pins this goroutine or the
// subscription.
func (s *NotifyService) Realtime(ctx context.Context, input <-chan []string, output chan<- repae.Signal) {
	sub := s.rdb.Subscribe(ctx)
	defer sub.Close()

	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case channels, ok := <-input:
			if !ok {
				return
			}
			if err := sub.Unsubscribe(ctx); err != nil {
				slog.Error(
					"Failed to reset subscription",
					slog.String("error", err.Error()),
					slog.String("module", "notify"),
				)
				continue
			}
			if err := sub.Subscribe(ctx, channels...); err != nil {
				slog.Error(
					"Failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "notify"),
				)
			}

		case msg, ok := <-messages:
			if !ok {
				return
			}
			var signal repae.Signal
			if err := json.Unmarshal([]byte(msg.Payload), &signal); err != nil {
				slog.Error(
					"Failed to decode signal",
					slog.String("error", err.Error()),
					slog.String("module", "notify"),
				)
				continue
			}
			signal.Channel = msg.Channel
			select {
			case output <- signal:
			case <-ctx.Done():
				return
			}
		}
	}
}

package redis

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
)

// Feed appends shelf change events to a Redis stream.
// It is write-only: nothing in the service reads the stream back.
type Feed struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewFeed creates a feed writing to stream. Empty stream and non-positive
// maxLen fall back to the defaults.
func NewFeed(client *redis.Client, stream string, maxLen int64) *Feed {
	if stream == "" {
		stream = DefaultStream
	}
	if maxLen <= 0 {
		maxLen = DefaultStreamMaxLen
	}
	return &Feed{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Stream returns the key the feed writes to
func (f *Feed) Stream() string {
	return f.stream
}

// Publish appends ev to the stream
func (f *Feed) Publish(ctx context.Context, ev domain.Event) error {
	values, err := StreamValues(ev)
	if err != nil {
		return err
	}

	err = f.client.XAdd(ctx, &redis.XAddArgs{
		Stream: f.stream,
		MaxLen: f.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}

	return nil
}

// Ping checks that Redis answers
func (f *Feed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

// StreamValues encodes ev as the field map of a stream entry
func StreamValues(ev domain.Event) (map[string]interface{}, error) {
	values := map[string]interface{}{
		FieldType:   string(ev.Type),
		FieldBookID: ev.BookID,
		FieldAt:     ev.At.UTC().Format(time.RFC3339Nano),
	}

	if ev.Book != nil {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(ev.Book)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal book %s: %w", ev.BookID, err)
		}
		values[FieldBook] = string(data)
	}

	return values, nil
}

//go:build unit

package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func newPublisher(w messageWriter) *KafkaPublisher {
	cfg := config.KafkaConfig{BookingTopic: "booking-events", SearchTopic: "search-events"}
	return NewKafkaPublisher(w, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishBooking(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w)
	at := time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC)

	p.PublishBooking(context.Background(),
		shared.BookingEvent{Type: "booking.confirmed", BookingID: "b1", ListingID: "hotel-1", OccurredAt: at},
		shared.BookingEvent{Type: "booking.confirmed", BookingID: "b2", ListingID: "hotel-1", OccurredAt: at},
	)

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "booking-events", w.msgs[0].Topic)
	assert.Equal(t, []byte("hotel-1"), w.msgs[0].Key)

	var got shared.BookingEvent
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &got))
	assert.Equal(t, "b2", got.BookingID)
	assert.Equal(t, "booking.confirmed", got.Type)
}

func TestPublishNeverFails(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := newPublisher(w)

	assert.NotPanics(t, func() {
		p.PublishSearch(context.Background(), shared.SearchEvent{ListingID: "car-1", Remaining: 1})
	})
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "search-events", w.msgs[0].Topic)

	p.PublishBooking(context.Background())
	assert.Len(t, w.msgs, 1)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

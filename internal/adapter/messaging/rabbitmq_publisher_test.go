package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"question-bank/internal/config"
	"question-bank/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(nil, ch, "question_bank.events")
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	event := domain.QuestionsImportedEvent{BatchID: "b1", Count: 2, Sections: []string{"Math"}, At: at}
	require.NoError(t, p.Publish(context.Background(), domain.EventQuestionsImported, event))

	assert.Equal(t, "question_bank.events", ch.exchange)
	assert.Equal(t, domain.EventQuestionsImported, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, at, ch.msg.Timestamp)

	var got domain.QuestionsImportedEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, event, got)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitMQPublisher_PublishError(t *testing.T) {
	brokerErr := errors.New("channel/connection is not open")
	p := newPublisher(nil, &fakeChannel{err: brokerErr}, "x")

	err := p.Publish(context.Background(), "questions.imported", map[string]int{"count": 1})
	assert.ErrorIs(t, err, brokerErr)

	err = p.Publish(context.Background(), "questions.imported", make(chan int))
	assert.Error(t, err, "unmarshalable payload")
}

func TestNewRabbitMQPublisher_Disabled(t *testing.T) {
	p, err := NewRabbitMQPublisher(config.RabbitMQConfig{})
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "anything", nil))
	assert.NoError(t, p.Close())
}

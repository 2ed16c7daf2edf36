package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"student-dashboard-backend/internal/reminders"
)

type published struct {
	exchange, key string
	msg           amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	bound      [][3]string
	published  []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, "exchange:"+name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp091.Table) (amqp091.Queue, error) {
	f.declared = append(f.declared, "queue:"+name)
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp091.Table) error {
	f.bound = append(f.bound, [3]string{name, key, exchange})
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestSetupDeclaresTopology(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchangeName: "dashboard", queueName: "reminders"}

	require.NoError(t, p.setup())
	require.Equal(t, []string{"exchange:dashboard:direct", "queue:reminders"}, ch.declared)
	require.Equal(t, [][3]string{{"reminders", "reminders", "dashboard"}}, ch.bound)
}

func TestNotifyPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchangeName: "dashboard", queueName: "reminders"}
	due := time.Date(2024, 6, 11, 6, 0, 0, 0, time.UTC)

	err := p.Notify(context.Background(), reminders.Notification{ReminderID: "r1", Title: "Reminder: Rent", Body: "Due in 5 hours", DueAt: due})
	require.NoError(t, err)
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	require.Equal(t, "dashboard", got.exchange)
	require.Equal(t, "reminders", got.key)
	require.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)
	require.Equal(t, "application/json", got.msg.ContentType)
	require.Equal(t, "r1", got.msg.MessageId)

	var body reminders.Notification
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	require.Equal(t, "Reminder: Rent", body.Title)
	require.True(t, body.DueAt.Equal(due))
}

func TestNotifyWrapsPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &Publisher{channel: &fakeChannel{publishErr: boom}, exchangeName: "x", queueName: "q"}

	err := p.Notify(context.Background(), reminders.Notification{ReminderID: "r1"})
	require.ErrorIs(t, err, boom)
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch}
	require.NoError(t, p.Close())
	require.True(t, ch.closed)
}

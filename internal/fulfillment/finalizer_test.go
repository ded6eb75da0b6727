package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"

	"song-order-service/internal/notify"
	"song-order-service/internal/orders"
	"song-order-service/internal/stores/kafka"
)

// MockSender implements notify.Sender for testing.
type MockSender struct {
	sent []notify.Message
	err  error
}

func (m *MockSender) Send(_ context.Context, msg notify.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

// MockLedger implements Ledger: first call per session id returns true.
type MockLedger struct {
	seen map[string]bool
	err  error
}

func (m *MockLedger) MarkNotified(_ context.Context, sessionID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	if m.seen[sessionID] {
		return false, nil
	}
	m.seen[sessionID] = true
	return true, nil
}

// MockProducer implements EventProducer.
type MockProducer struct {
	topics []string
	keys   [][]byte
	values [][]byte
}

func (m *MockProducer) ProduceMessage(topic string, key, value []byte) error {
	m.topics = append(m.topics, topic)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	return nil
}

func paidSession(email string) *stripe.CheckoutSession {
	sess := &stripe.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: orders.Metadata("couple", orders.SongData{
			RecipientName: "Marie",
		}, "fr", true, false),
	}
	if email != "" {
		sess.CustomerDetails = &stripe.CheckoutSessionCustomerDetails{Email: email}
	}
	return sess
}

func newFinalizer(sender *MockSender) *Finalizer {
	return &Finalizer{
		Sender:   sender,
		Composer: notify.Composer{Inbox: "orders@example.com", Taxed: true},
	}
}

func TestFinalizePaid_SendsBothEmails(t *testing.T) {
	sender := &MockSender{}
	f := newFinalizer(sender)

	f.FinalizePaid(context.Background(), paidSession("client@example.com"))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "orders@example.com", sender.sent[0].To)
	assert.NotNil(t, sender.sent[0].Attachment)
	assert.Equal(t, "client@example.com", sender.sent[1].To)
	assert.Nil(t, sender.sent[1].Attachment)
}

func TestFinalizePaid_SkipsCustomerEmailWhenUnresolvable(t *testing.T) {
	sender := &MockSender{}
	f := newFinalizer(sender)

	f.FinalizePaid(context.Background(), paidSession(""))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "orders@example.com", sender.sent[0].To)
}

func TestFinalizePaid_WithoutLedgerResendsEveryObservation(t *testing.T) {
	sender := &MockSender{}
	f := newFinalizer(sender)
	sess := paidSession("client@example.com")

	f.FinalizePaid(context.Background(), sess)
	f.FinalizePaid(context.Background(), sess)

	assert.Len(t, sender.sent, 4)
}

func TestFinalizePaid_LedgerMakesDispatchAtMostOnce(t *testing.T) {
	sender := &MockSender{}
	f := newFinalizer(sender)
	f.Ledger = &MockLedger{}
	sess := paidSession("client@example.com")

	f.FinalizePaid(context.Background(), sess)
	f.FinalizePaid(context.Background(), sess)
	f.FinalizePaid(context.Background(), sess)

	assert.Len(t, sender.sent, 2)
}

func TestFinalizePaid_LedgerErrorStillDispatches(t *testing.T) {
	sender := &MockSender{}
	f := newFinalizer(sender)
	f.Ledger = &MockLedger{err: errors.New("db down")}

	f.FinalizePaid(context.Background(), paidSession("client@example.com"))

	assert.Len(t, sender.sent, 2)
}

func TestFinalizePaid_SendFailureIsSwallowed(t *testing.T) {
	sender := &MockSender{err: errors.New("relay unavailable")}
	f := newFinalizer(sender)

	// Must not panic or propagate; both sends are still attempted.
	f.FinalizePaid(context.Background(), paidSession("client@example.com"))
	assert.Len(t, sender.sent, 2)
}

func TestFinalizePaid_ProducesOrderPaidEvent(t *testing.T) {
	sender := &MockSender{}
	producer := &MockProducer{}
	f := newFinalizer(sender)
	f.Producer = producer

	f.FinalizePaid(context.Background(), paidSession("client@example.com"))

	require.Len(t, producer.topics, 1)
	assert.Equal(t, kafka.TopicOrderPaid, producer.topics[0])
	assert.Equal(t, []byte("cs_test_123"), producer.keys[0])

	var event kafka.OrderPaidEvent
	require.NoError(t, json.Unmarshal(producer.values[0], &event))
	assert.Equal(t, "cs_test_123", event.SessionID)
	assert.Equal(t, "couple", event.Plan)
	// couple + urgent, taxed: 6400 + 320 + 638
	assert.Equal(t, int64(7358), event.AmountTotal)
	assert.Equal(t, "client@example.com", event.CustomerEmail)
	assert.True(t, event.Urgent)
	assert.False(t, event.Video)
}

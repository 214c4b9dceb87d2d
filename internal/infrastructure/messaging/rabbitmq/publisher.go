package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "courtsplit.events"

	// how long to wait for a Return or Confirm after publishing
	publishWait = 150 * time.Millisecond

	// room for late returns and confirms of publishes that timed out
	notifyBuffer = 64
)

var (
	ErrMissingRoutingKey = errors.New("missing routing key")
	ErrNotReady          = errors.New("publisher channel not ready")
	ErrNoRoute           = errors.New("NO_ROUTE")
	ErrNack              = errors.New("publish nack")
)

// Publisher sends JSON messages to a durable topic exchange with mandatory delivery and
// publisher confirms. It satisfies session.Publisher. Publishes are serialized so each one can
// pair its delivery tag with the confirm that follows.
type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch
	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, notifyBuffer))
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, notifyBuffer))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// PublishEvent marshals payload and publishes it under routingKey. Payloads exposing ID()
// keep that id as the message id.
func (p *Publisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	if strings.TrimSpace(routingKey) == "" {
		return ErrMissingRoutingKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return ErrNotReady
	}

	id := messageID(payload)
	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    id,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}
	return awaitConfirm(ctx, id, tag, p.confirmCh, p.returnCh, publishWait)
}

// awaitConfirm waits for the confirm of delivery tag. The broker sends an unroutable message's
// Return before its Ack, so both are consumed here. Returns are matched by message id and
// confirms by tag; leftovers from earlier timed-out publishes are dropped.
func awaitConfirm(
	ctx context.Context,
	id string,
	tag uint64,
	confirms <-chan amqp.Confirmation,
	returns <-chan amqp.Return,
	wait time.Duration,
) error {
	var returned *amqp.Return
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case ret := <-returns:
			if ret.MessageId == id {
				returned = &ret
			}
		case conf := <-confirms:
			if conf.DeliveryTag < tag {
				continue
			}
			// the Return, if any, was queued before this confirm
			for drained := false; !drained; {
				select {
				case ret := <-returns:
					if ret.MessageId == id {
						returned = &ret
					}
				default:
					drained = true
				}
			}
			if returned != nil {
				return fmt.Errorf("%w: %s", ErrNoRoute, returned.RoutingKey)
			}
			if !conf.Ack {
				return ErrNack
			}
			return nil
		case <-timer.C:
			if returned != nil {
				return fmt.Errorf("%w: %s", ErrNoRoute, returned.RoutingKey)
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func messageID(payload any) string {
	if v, ok := payload.(interface{ ID() string }); ok && v.ID() != "" {
		return v.ID()
	}
	return uuid.NewString()
}

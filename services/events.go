package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const EventDailyLogUpdated = "daily_log.updated"

type Event struct {
	Kind   string    `json:"kind"`
	UserID uint      `json:"user_id,omitempty"`
	At     time.Time `json:"at,omitempty"`
	Data   any       `json:"data"`
}

// Notifier receives tracking events. Implementations must not block.
type Notifier interface {
	Notify(userID uint, kind string, payload any)
}

type Notifiers []Notifier

func (ns Notifiers) Notify(userID uint, kind string, payload any) {
	for _, n := range ns {
		if n != nil {
			n.Notify(userID, kind, payload)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(uint, string, any) {}

const (
	eventQueueSize = 256
	redialBackoff  = 5 * time.Second
)

// eventQueue hands events to send on a single background goroutine.
// Notify never waits: when the buffer is full the event is dropped.
type eventQueue struct {
	name string
	send func(Event) error
	log  *logrus.Logger

	mu     sync.RWMutex
	closed bool
	events chan Event
	done   chan struct{}
}

func newEventQueue(name string, size int, log *logrus.Logger, send func(Event) error) *eventQueue {
	q := &eventQueue{
		name:   name,
		send:   send,
		log:    log,
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *eventQueue) run() {
	defer close(q.done)
	for ev := range q.events {
		if err := q.send(ev); err != nil && q.log != nil {
			q.log.WithError(err).WithField("kind", ev.Kind).Warnf("%s: publish event", q.name)
		}
	}
}

func (q *eventQueue) Notify(userID uint, kind string, payload any) {
	ev := Event{Kind: kind, UserID: userID, At: time.Now().UTC(), Data: payload}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return
	}
	select {
	case q.events <- ev:
	default:
		if q.log != nil {
			q.log.WithFields(logrus.Fields{"kind": kind, "user_id": userID}).Warnf("%s: queue full, event dropped", q.name)
		}
	}
}

// Close stops accepting events and waits for the queued ones to be sent.
func (q *eventQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
	q.mu.Unlock()
	<-q.done
}

// AMQPPublisher publishes events to a topic exchange, routing key = kind.
// Notify queues; a background goroutine owns the broker connection.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *logrus.Logger
	queue    *eventQueue

	mu         sync.Mutex
	conn       *amqp.Connection
	channel    *amqp.Channel
	nextRedial time.Time
}

func NewAMQPPublisher(url, exchange string, log *logrus.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, exchange: exchange, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	p.queue = newEventQueue("rabbitmq", eventQueueSize, log, p.publish)
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq exchange %s: %w", p.exchange, err)
	}
	p.conn, p.channel = conn, ch
	return nil
}

var errBrokerUnavailable = errors.New("rabbitmq unavailable")

func (p *AMQPPublisher) publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.conn == nil || p.conn.IsClosed() {
		if time.Now().Before(p.nextRedial) {
			return errBrokerUnavailable
		}
		if err := p.connect(); err != nil {
			p.nextRedial = time.Now().Add(redialBackoff)
			return err
		}
	}
	err = p.channel.Publish(p.exchange, ev.Kind, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Body:         body,
	})
	if errors.Is(err, amqp.ErrClosed) {
		p.channel = nil
	}
	return err
}

func (p *AMQPPublisher) Notify(userID uint, kind string, payload any) {
	p.queue.Notify(userID, kind, payload)
}

// Close flushes queued events and closes the connection.
func (p *AMQPPublisher) Close() error {
	p.queue.Close()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

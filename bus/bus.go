// bus.go
package bus

import (
	"sync"
	"sync/atomic"
)

// -----------------------------------------------------------------------------
// Topics
// -----------------------------------------------------------------------------

// Topic is a path of plain string tokens, e.g. {"deck", "tx"}.
// Tokens must not contain '/'.
type Topic []string

// T builds a topic from tokens.
func T(tokens ...string) Topic { return Topic(tokens) }

// Key joins the tokens with '/'. Used as the routing key and for log lines.
func (t Topic) Key() string {
	if len(t) == 1 {
		return t[0]
	}
	n := len(t) - 1
	for _, tok := range t {
		n += len(tok)
	}
	b := make([]byte, 0, n)
	for i, tok := range t {
		if i > 0 {
			b = append(b, '/')
		}
		b = append(b, tok...)
	}
	return string(b)
}

func (t Topic) String() string { return t.Key() }

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	key  string
	ch   chan *Message
	conn *Connection // owning connection
}

func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

// Bus is an in-process pub/sub hub. Delivery is fire-and-forget: a full
// subscriber queue drops its oldest message rather than blocking the
// publisher. Retained messages are replayed to late subscribers.
type Bus struct {
	mu       sync.RWMutex
	subs     map[string][]*Subscription
	retained map[string]*Message
	qLen     int
	drops    uint32
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		subs:     make(map[string][]*Subscription),
		retained: make(map[string]*Message),
		qLen:     queueLen,
	}
}

// Publish delivers a message to all subscribers of its topic.
func (b *Bus) Publish(msg *Message) {
	key := msg.Topic.Key()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[key] {
		select {
		case sub.ch <- msg:
		default:
			// Drop oldest so the newest state wins.
			<-sub.ch
			sub.ch <- msg
			atomic.AddUint32(&b.drops, 1)
		}
	}

	if msg.Retained {
		if msg.Payload == nil {
			delete(b.retained, key)
		} else {
			b.retained[key] = msg
		}
	}
}

// Drops reports how many queued messages were displaced by newer ones.
func (b *Bus) Drops() uint32 { return atomic.LoadUint32(&b.drops) }

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[sub.key] = append(b.subs[sub.key], sub)

	if ret := b.retained[sub.key]; ret != nil {
		select {
		case sub.ch <- ret:
		default:
		}
	}
}

func (b *Bus) removeSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.key]
	for i, s := range list {
		if s == sub {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(b.subs, sub.key)
	} else {
		b.subs[sub.key] = list
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

// Connection groups subscriptions under one owner so a service can tear
// everything down with a single Disconnect.
type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string // placeholder for future identity/auth
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

// Send publishes a non-retained payload on topic.
func (c *Connection) Send(topic Topic, payload any) {
	c.bus.Publish(&Message{Topic: topic, Payload: payload})
}

// Retain publishes a retained payload on topic. A nil payload clears it.
func (c *Connection) Retain(topic Topic, payload any) {
	c.bus.Publish(&Message{Topic: topic, Payload: payload, Retained: true})
}

// Subscribe registers a subscription owned by this connection.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		key:  topic.Key(),
		ch:   make(chan *Message, c.bus.qLen),
		conn: c,
	}
	c.bus.addSubscription(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.removeSubscription(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.removeSubscription(sub)
		close(sub.ch)
	}
}

package notify

import (
	"strconv"

	"github.com/piyukr2/Bed-Manager/internal/domain"

	"go.uber.org/zap"
)

// Topic is a pub/sub routing key. The three audiences are the whole facility,
// a single bed, and a ward.
type Topic string

const TopicAll Topic = "all"

func BedTopic(id int) Topic {
	return Topic("bed:" + strconv.Itoa(id))
}

func WardTopic(ward string) Topic {
	return Topic("ward:" + ward)
}

// Publisher is the transport-agnostic fan-out used by the services. Delivery
// is fire-and-forget: a slow or dead subscriber never fails the caller.
type Publisher interface {
	Publish(topic Topic, event domain.BedEvent)
}

// NopPublisher discards every event. Useful where fan-out is not wired.
type NopPublisher struct{}

func (NopPublisher) Publish(Topic, domain.BedEvent) {}

const subscriberBuffer = 16

// Subscriber receives events for the topics it subscribed to, in publish
// order per topic. Events are dropped when its buffer is full.
type Subscriber struct {
	topics []Topic
	events chan domain.BedEvent
}

func (s *Subscriber) Events() <-chan domain.BedEvent {
	return s.events
}

type publication struct {
	topic Topic
	event domain.BedEvent
}

// Hub is an in-process topic-keyed broadcast hub. All bookkeeping happens on
// the Run goroutine, mirroring a register/unregister/broadcast select loop.
type Hub struct {
	register    chan *Subscriber
	unregister  chan *Subscriber
	publish     chan publication
	stop        chan struct{}
	subscribers map[Topic]map[*Subscriber]bool
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		publish:     make(chan publication, 256),
		stop:        make(chan struct{}),
		subscribers: make(map[Topic]map[*Subscriber]bool),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			for _, topic := range sub.topics {
				if h.subscribers[topic] == nil {
					h.subscribers[topic] = make(map[*Subscriber]bool)
				}
				h.subscribers[topic][sub] = true
			}
			h.logger.Debug("subscriber registered", zap.Int("topics", len(sub.topics)))

		case sub := <-h.unregister:
			registered := false
			for _, topic := range sub.topics {
				if subs, ok := h.subscribers[topic]; ok && subs[sub] {
					registered = true
					delete(subs, sub)
					if len(subs) == 0 {
						delete(h.subscribers, topic)
					}
				}
			}
			if registered {
				close(sub.events)
			}

		case pub := <-h.publish:
			for sub := range h.subscribers[pub.topic] {
				select {
				case sub.events <- pub.event:
				default:
					h.logger.Warn("subscriber buffer full, dropping event",
						zap.String("topic", string(pub.topic)),
						zap.String("event_type", string(pub.event.Type)),
					)
				}
			}

		case <-h.stop:
			closed := make(map[*Subscriber]bool)
			for topic, subs := range h.subscribers {
				for sub := range subs {
					if !closed[sub] {
						closed[sub] = true
						close(sub.events)
					}
				}
				delete(h.subscribers, topic)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Subscribe registers interest in the given topics (TopicAll when none given).
// After Stop the returned subscriber's channel is already closed.
func (h *Hub) Subscribe(topics ...Topic) *Subscriber {
	if len(topics) == 0 {
		topics = []Topic{TopicAll}
	}
	sub := &Subscriber{topics: topics, events: make(chan domain.BedEvent, subscriberBuffer)}
	select {
	case h.register <- sub:
	case <-h.stop:
		close(sub.events)
	}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.stop:
	}
}

// Publish enqueues the event without blocking the caller. When the hub queue
// is full the event is dropped.
func (h *Hub) Publish(topic Topic, event domain.BedEvent) {
	select {
	case h.publish <- publication{topic: topic, event: event}:
	default:
		h.logger.Warn("hub queue full, dropping event",
			zap.String("topic", string(topic)),
			zap.String("event_type", string(event.Type)),
		)
	}
}

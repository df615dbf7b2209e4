package modules

import (
	"context"
	"cybot/internal/core/domain"
	"cybot/internal/core/port"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DailyPushTime is the fixed local wall-clock time of the daily push,
// quoted in user-facing confirmations.
const DailyPushTime = "08:00"

// SubscriptionModule owns the subscription table. Command handling is the
// only writer; the push pipeline reads through Snapshot. Mutations rewrite
// the persisted snapshot under the lock so concurrent `on` calls from
// different users cannot corrupt the table.
type SubscriptionModule struct {
	store port.SubscriptionStore
	name  string

	mu            sync.Mutex
	subscriptions map[string]domain.SubscriptionRecord
}

func NewSubscriptionModule(store port.SubscriptionStore, name string) *SubscriptionModule {
	subscriptions, err := store.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load subscription data, starting empty")
		subscriptions = make(map[string]domain.SubscriptionRecord)
	}

	return &SubscriptionModule{
		store:         store,
		name:          name,
		subscriptions: subscriptions,
	}
}

func (s *SubscriptionModule) GetName() string {
	return s.name
}

func (s *SubscriptionModule) GetDescription() string {
	return "daily weather and greeting subscription"
}

func (s *SubscriptionModule) Help() string {
	return "Subscription commands:\n" +
		"- `cy sub on <location>`: enable the daily push (e.g. `cy sub on Beijing`)\n" +
		"- `cy sub off`: disable the daily push\n" +
		"- `cy sub status`: show your subscription state"
}

func (s *SubscriptionModule) Handle(ctx context.Context, args []string, message *domain.Message) (string, error) {
	if len(args) == 0 {
		return s.Help(), nil
	}

	l := log.With().
		Str("module", s.name).
		Str("senderId", message.SenderID).
		Logger()

	switch strings.ToLower(args[0]) {
	case "on":
		if len(args) < 2 {
			return "❌ please name a location, e.g. `cy sub on Beijing`", nil
		}
		return s.subscribe(l, args[1], message), nil
	case "off":
		return s.unsubscribe(l, message.SenderID), nil
	case "status":
		return s.status(message.SenderID), nil
	default:
		return "❌ unknown subcommand.\n" + s.Help(), nil
	}
}

func (s *SubscriptionModule) subscribe(l zerolog.Logger, location string, message *domain.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscriptions[message.SenderID] = domain.SubscriptionRecord{
		SubscriberID:   message.SenderID,
		Location:       location,
		Enabled:        true,
		UserName:       message.SenderName,
		DeliveryTarget: message.DeliveryTarget,
	}

	confirmation := "✅ subscribed! You'll get the weather for " + location +
		" every day at " + DailyPushTime + "."

	if err := s.store.Save(s.subscriptions); err != nil {
		l.Error().Err(err).Msg(domain.ErrNotSaved.Error())
		return confirmation + "\n⚠️ saving failed, the subscription may not survive a restart."
	}

	l.Info().Str("location", location).Msg("subscription enabled")
	return confirmation
}

func (s *SubscriptionModule) unsubscribe(l zerolog.Logger, senderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.subscriptions[senderID]
	if !ok {
		return "⚠️ you are not subscribed."
	}

	record.Enabled = false
	s.subscriptions[senderID] = record

	if err := s.store.Save(s.subscriptions); err != nil {
		l.Error().Err(err).Msg(domain.ErrNotSaved.Error())
		return "✅ unsubscribed.\n⚠️ saving failed, the change may not survive a restart."
	}

	l.Info().Msg("subscription disabled")
	return "✅ unsubscribed."
}

func (s *SubscriptionModule) status(senderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.subscriptions[senderID]
	if ok && record.Enabled {
		return "✅ current state: subscribed (" + record.Location + ")"
	}

	return "current state: not subscribed"
}

// Snapshot returns the enabled subscriptions in ascending subscriber-id
// order, so the push pipeline visits subscribers deterministically.
func (s *SubscriptionModule) Snapshot() []domain.SubscriptionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.SubscriptionRecord, 0, len(s.subscriptions))
	for id, record := range s.subscriptions {
		if !record.Enabled || record.DeliveryTarget == "" {
			continue
		}
		record.SubscriberID = id
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].SubscriberID < records[j].SubscriberID
	})

	return records
}

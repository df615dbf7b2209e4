package service

import (
	"context"
	"cybot/internal/core/domain"
	"cybot/internal/core/port"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// WeatherUnavailable replaces the weather line when the provider fails.
const WeatherUnavailable = "weather unavailable"

const fallbackGreeting = "Have a wonderful day today!"

// SubscriptionSource yields the enabled subscriptions in a deterministic
// order. The push pipeline never touches the store directly.
type SubscriptionSource interface {
	Snapshot() []domain.SubscriptionRecord
}

// GreetingPush composes and delivers the daily message to every enabled
// subscriber. A failure for one subscriber is logged and never aborts the
// batch; external calls are individually timeout-bounded so a hung provider
// cannot stall the remaining subscribers indefinitely.
type GreetingPush struct {
	source      SubscriptionSource
	weather     port.WeatherProvider
	generator   port.TextGenerator
	sender      port.TextSender
	callTimeout time.Duration
}

func NewGreetingPush(source SubscriptionSource, weather port.WeatherProvider,
	generator port.TextGenerator, sender port.TextSender, callTimeout time.Duration) *GreetingPush {
	return &GreetingPush{
		source:      source,
		weather:     weather,
		generator:   generator,
		sender:      sender,
		callTimeout: callTimeout,
	}
}

// Run executes one full push batch.
func (g *GreetingPush) Run(ctx context.Context) {
	runID, _ := uuid.NewV4()
	l := log.With().Str("pushRun", runID.String()).Logger()

	records := g.source.Snapshot()
	l.Info().Int("subscribers", len(records)).Msg("starting daily push")

	for _, record := range records {
		if err := g.pushOne(ctx, record); err != nil {
			l.Error().Err(err).Str("subscriberId", record.SubscriberID).Msg("push failed")
			continue
		}
		l.Info().Str("subscriberId", record.SubscriberID).Msg("pushed")
	}
}

func (g *GreetingPush) pushOne(ctx context.Context, record domain.SubscriptionRecord) error {
	weather := g.fetchWeather(ctx, record.Location)
	greeting := g.generateGreeting(ctx, record, weather)

	message := composeMessage(record, time.Now(), weather, greeting)

	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	if err := g.sender.SendMessage(ctx, record.DeliveryTarget, message); err != nil {
		return fmt.Errorf("failed to deliver push: %w", err)
	}

	return nil
}

func (g *GreetingPush) fetchWeather(ctx context.Context, location string) string {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	weather, err := g.weather.CurrentConditions(ctx, location)
	if err != nil {
		log.Error().Err(err).Str("location", location).Msg("failed to fetch weather")
		return WeatherUnavailable
	}

	return weather
}

func (g *GreetingPush) generateGreeting(ctx context.Context, record domain.SubscriptionRecord,
	weather string) string {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Write a short, warm good-morning greeting (under 50 words) for %s.\n"+
		"Date: %s\nLocation: %s\nWeather: %s",
		record.UserName, time.Now().Format("2006-01-02 Monday"), record.Location, weather)

	greeting, err := g.generator.GenerateFromPrompt(ctx, []domain.Prompt{
		{Author: domain.User, Prompt: prompt},
	})
	if err != nil {
		log.Error().Err(err).Str("subscriberId", record.SubscriberID).Msg("failed to generate greeting")
		return fallbackGreeting
	}

	greeting = strings.TrimSpace(greeting)
	if greeting == "" {
		return fallbackGreeting
	}

	return greeting
}

func composeMessage(record domain.SubscriptionRecord, now time.Time, weather, greeting string) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "🌞 Good morning, %s!\n\n", record.UserName)
	fmt.Fprintf(sb, "📅 %s\n", now.Format("2006-01-02 Monday"))
	fmt.Fprintf(sb, "📍 %s weather report:\n", record.Location)
	fmt.Fprintf(sb, "☁️ %s\n\n", weather)
	fmt.Fprintf(sb, "🤖 A note for your day:\n%s", greeting)

	return sb.String()
}

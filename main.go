package main

import (
	"context"
	"cybot/internal/adapters/generator"
	"cybot/internal/adapters/handler"
	"cybot/internal/adapters/sender"
	"cybot/internal/adapters/store"
	"cybot/internal/adapters/weather"
	"cybot/internal/core/domain"
	"cybot/internal/core/domain/modules"
	"cybot/internal/core/service"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/rs/zerolog"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// fires every day at 08:00 local time
const dailyPushSpec = "0 8 * * *"

func main() {
	log.Info().Msg("starting cybot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	viper.SetDefault("weather.base_url", "https://wttr.in")
	viper.SetDefault("store.path", "data/subscriptions.json")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegramSender(b)

	subscriptionStore := store.NewFileStore(viper.GetString("store.path"))
	subscriptionModule := modules.NewSubscriptionModule(subscriptionStore, "sub")

	moduleRegistry := &domain.ModuleRegistry{}

	if err := moduleRegistry.Register(subscriptionModule); err != nil {
		log.Fatal().Err(err).Msg("failed registering subscription module")
	}
	if err := moduleRegistry.Register(modules.NewHelpModule(moduleRegistry, "help")); err != nil {
		log.Fatal().Err(err).Msg("failed registering help module")
	}

	dispatcher := domain.NewDispatcher(moduleRegistry)

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	commandHandler := handler.NewCommand(dispatcher, s, handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, handler.EntryCommand, bot.MatchTypePrefix, commandHandler.Handle)

	orGenerator := generator.NewOpenRouterGenerator(
		viper.GetString("greeting.api_key"),
		viper.GetString("greeting.model"),
		viper.GetString("greeting.system_prompt"))

	wttrProvider := weather.NewWttr(viper.GetString("weather.base_url"))

	callTimeout, err := time.ParseDuration(viper.GetString("push.call_timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for push calls in config")
	}

	greetingPush := service.NewGreetingPush(subscriptionModule, wttrProvider, orGenerator, s, callTimeout)

	scheduler := service.NewDailyScheduler(dailyPushSpec, func() {
		greetingPush.Run(ctx)
	})
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed starting daily scheduler")
	}
	defer scheduler.Stop()

	log.Info().Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/chatrelay/chatrelay/internal/allowlist"
	"github.com/chatrelay/chatrelay/internal/channel"
	"github.com/chatrelay/chatrelay/internal/channel/adapters/facebook"
	"github.com/chatrelay/chatrelay/internal/channel/adapters/noop"
	"github.com/chatrelay/chatrelay/internal/channel/adapters/telegram"
	"github.com/chatrelay/chatrelay/internal/config"
	"github.com/chatrelay/chatrelay/internal/handlers"
	"github.com/chatrelay/chatrelay/internal/logger"
	"github.com/chatrelay/chatrelay/internal/responder"
	"github.com/chatrelay/chatrelay/internal/server"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideAllowlist,
			provideResolver,
			provideRegistry,
			provideDispatcher,
			provideServerHandler(handlers.NewStatusHandler),
			provideServerHandler(handlers.NewWebhookHandler),
			provideServerHandler(handlers.NewUsersHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideAllowlist(cfg config.Config) *allowlist.Store {
	return allowlist.NewStore(cfg.Allowlist.Users)
}

func provideResolver(cfg config.Config) *responder.Resolver {
	defaultReply := cfg.Responses.Default
	users := make(map[string]string, len(cfg.Responses.Users))
	for id, reply := range cfg.Responses.Users {
		// "default" is the sentinel key of the user table, not a user id.
		if id == "default" {
			defaultReply = reply
			continue
		}
		users[id] = reply
	}
	rules := make([]responder.Rule, 0, len(cfg.Responses.Keywords))
	for _, kw := range cfg.Responses.Keywords {
		rules = append(rules, responder.Rule{Keyword: kw.Keyword, Reply: kw.Reply})
	}
	return responder.NewResolver(defaultReply, users, rules)
}

func provideRegistry(log *slog.Logger, cfg config.Config) *channel.Registry {
	registry := channel.NewRegistry()
	registry.MustRegister(facebook.NewAdapter(log, cfg.Facebook.PageToken))
	registry.MustRegister(telegram.NewAdapter(log, cfg.Telegram.BotToken))
	registry.MustRegister(noop.NewAdapter(log))
	return registry
}

func provideDispatcher(log *slog.Logger, registry *channel.Registry, cfg config.Config) *channel.Dispatcher {
	return channel.NewDispatcher(log, registry, channel.ChannelType(cfg.Relay.Platform))
}

type serverParams struct {
	fx.In
	Logger   *slog.Logger
	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.New(params.Config.Server.Addr, params.Logger, params.Handlers)
}

func startServer(lc fx.Lifecycle, srv *server.Server, log *slog.Logger, cfg config.Config, store *allowlist.Store) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("starting relay server",
				slog.String("addr", cfg.Server.Addr),
				slog.String("platform", cfg.Relay.Platform),
				slog.Int("allowed_users", store.Len()))
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Stop(ctx)
		},
	})
}

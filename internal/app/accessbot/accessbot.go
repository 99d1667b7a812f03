// Package accessbot собирает приложение целиком: хранилище, сервисы,
// telegram-бота и HTTP-сервер админ-панели.
package accessbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/course-access-bot/internal/bot"
	"github.com/magabrotheeeer/course-access-bot/internal/botstate"
	"github.com/magabrotheeeer/course-access-bot/internal/config"
	"github.com/magabrotheeeer/course-access-bot/internal/http/webview"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/jwt"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/password"
	"github.com/magabrotheeeer/course-access-bot/internal/lib/sl"
	accessservice "github.com/magabrotheeeer/course-access-bot/internal/services/access"
	broadcastservice "github.com/magabrotheeeer/course-access-bot/internal/services/broadcast"
	promoservice "github.com/magabrotheeeer/course-access-bot/internal/services/promo"
	registrationservice "github.com/magabrotheeeer/course-access-bot/internal/services/registration"
	"github.com/magabrotheeeer/course-access-bot/internal/storage/repository"
)

// App объединяет долгоживущие компоненты сервиса.
type App struct {
	server *http.Server
	bot    *bot.Bot
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение: подключается к базе и создает схему,
// заводит учётную запись администратора, поднимает состояние диалогов
// (Redis или память), подключает бота и собирает маршруты панели.
//
// Бот деградирует мягко: без токена панель продолжает работать,
// недоступна остается только рассылка и сам бот.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "accessbot.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := seedAdmin(ctx, db, cfg.Admin); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	states, err := newStateStore(ctx, cfg.RedisConnection, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessService := accessservice.New(db)
	registrationService := registrationservice.New(db)
	promoService := promoservice.New(db)

	var courseBot *bot.Bot
	var broadcastService *broadcastservice.Service
	if cfg.Bot.BotToken == "" {
		logger.Warn("bot token is empty, telegram bot and broadcast are disabled")
	} else {
		client, err := bot.Connect(cfg.Bot)
		if err != nil {
			logger.Error("failed to connect telegram bot, continuing without it", sl.Err(err))
		} else {
			courseBot = bot.New(client, logger, cfg.Bot, cfg.Company, states, db,
				accessService, registrationService, promoService)
			broadcastService = broadcastservice.New(db, courseBot, logger)
		}
	}

	view, err := webview.New(logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessionMaker := jwt.NewMaker(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, view, sessionMaker, broadcastService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		bot:    courseBot,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает бота и HTTP-сервер, блокируется до отмены контекста
// и затем гасит сервер с таймаутом.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	if a.bot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.bot.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		wg.Wait()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		wg.Wait()
		_ = a.db.DB.Close()
		return err
	}
}

// seedAdmin заводит или обновляет учётную запись администратора из
// конфигурации. В базе хранится только bcrypt-хэш пароля.
func seedAdmin(ctx context.Context, db *repository.Storage, cfg config.Admin) error {
	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	return db.UpsertAdmin(ctx, cfg.AdminUsername, hash)
}

// newStateStore выбирает хранилище диалогов: Redis, если задан адрес,
// иначе память процесса.
func newStateStore(ctx context.Context, cfg config.RedisConnection, logger *slog.Logger) (botstate.Store, error) {
	if cfg.AddressRedis == "" {
		logger.Info("dialog state store: in-memory")
		return botstate.NewMemoryStore(), nil
	}
	store, err := botstate.NewRedisStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("dialog state store: redis", slog.String("address", cfg.AddressRedis))
	return store, nil
}

package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
	"dentalsite/internal/storage/redis"
)

const (
	defaultIdleTimeout = 24 * time.Hour
	maxSweepInterval   = 10 * time.Minute
)

type Config struct {
	AdminIDs      []int64
	Currency      currency.Unit
	DefaultLocale string
	// IdleTimeout drops in-memory wizards of chats quiet for this long.
	// Their state stays in the state manager.
	IdleTimeout time.Duration
}

type Bot struct {
	api      API
	logger   *zap.Logger
	state    StateManager
	catalog  CatalogLoader
	resolver *calculator.Resolver
	sinks    SinkFactory
	leads    LeadExporter
	cfg      Config
	now      func() time.Time

	mu    sync.Mutex
	chats map[int64]*chatSession
}

// chatSession is the live wizard of one chat. The persisted copy in the
// state manager lets a restarted bot pick up where the user left off.
type chatSession struct {
	session  *calculator.Session
	locale   string
	awaiting string
	draft    calculator.Contact
	lastSeen time.Time
}

// ClientID is the identity a chat's form submissions are rate limited under.
func ClientID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// NewBotAPI authorizes against Telegram with the given token.
func NewBotAPI(token string, debug bool, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	botAPI.Debug = debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))
	return botAPI, nil
}

// New creates the bot. leads may be nil when the process has no database,
// admin commands are then unavailable.
func New(
	api API,
	catalogLoader CatalogLoader,
	state StateManager,
	sinks SinkFactory,
	leads LeadExporter,
	cfg Config,
	logger *zap.Logger,
) *Bot {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = catalog.DefaultLocale
	}
	if cfg.Currency == (currency.Unit{}) {
		cfg.Currency = calculator.DefaultCurrency
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	return &Bot{
		api:      api,
		logger:   logger,
		state:    state,
		catalog:  catalogLoader,
		resolver: calculator.DefaultResolver(),
		sinks:    sinks,
		leads:    leads,
		cfg:      cfg,
		now:      time.Now,
		chats:    make(map[int64]*chatSession),
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	sweep := time.NewTicker(min(b.cfg.IdleTimeout, maxSweepInterval))
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.Stop()
			return nil

		case <-sweep.C:
			b.evictIdle()

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// evictIdle closes wizards idle longer than IdleTimeout. Chats with a
// submission in flight are kept until it settles.
func (b *Bot) evictIdle() {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-b.cfg.IdleTimeout)
	evicted := 0
	for chatID, cs := range b.chats {
		if cs.lastSeen.After(cutoff) {
			continue
		}
		if status, _ := cs.session.Status(); status == calculator.SubmissionPending {
			continue
		}
		cs.session.Close()
		delete(b.chats, chatID)
		evicted++
	}
	if evicted > 0 {
		b.logger.Debug("Evicted idle chats",
			zap.Int("evicted", evicted),
			zap.Int("active", len(b.chats)))
	}
}

// Stop stops polling and closes every live wizard. Pending submissions are
// cancelled.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()

	b.mu.Lock()
	defer b.mu.Unlock()
	for chatID, cs := range b.chats {
		cs.session.Close()
		delete(b.chats, chatID)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	cs, err := b.loadChat(ctx, chatID, userLanguage(msg.From))
	if err != nil {
		b.logger.Error("Failed to load chat session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, printer(b.cfg.DefaultLocale).Sprintf(msgStateError))
		return
	}

	switch cs.awaiting {
	case AwaitName:
		b.handleName(ctx, chatID, cs, msg.Text)
	case AwaitPhone:
		phone := msg.Text
		if msg.Contact != nil {
			phone = msg.Contact.PhoneNumber
		}
		b.handlePhone(ctx, chatID, cs, phone)
	default:
		b.sendMessage(tgbotapi.NewMessage(chatID, printer(cs.locale).Sprintf(msgUseButtons)))
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	b.answerCallback(callback.ID)
	b.handleStepCallback(ctx, callback)
}

// loadChat returns the live wizard of a chat, restoring it from the
// state manager or starting a new one.
func (b *Bot) loadChat(ctx context.Context, chatID int64, languageCode string) (*chatSession, error) {
	if cs, ok := b.chats[chatID]; ok {
		cs.lastSeen = b.now()
		return cs, nil
	}

	rec, found, err := b.state.GetChatState(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !found {
		return b.newChatSession(ctx, chatID, catalog.MatchLocale(languageCode, b.cfg.DefaultLocale)), nil
	}

	locale := rec.Locale
	if !catalog.IsSupportedLocale(locale) {
		locale = b.cfg.DefaultLocale
	}
	cs := &chatSession{
		session:  calculator.RestoreSession(b.controller(ctx, locale), b.sinks(chatID), locale, rec.State),
		locale:   locale,
		awaiting: rec.Awaiting,
		draft:    rec.Contact,
		lastSeen: b.now(),
	}
	b.chats[chatID] = cs
	return cs, nil
}

func (b *Bot) newChatSession(ctx context.Context, chatID int64, locale string) *chatSession {
	if old, ok := b.chats[chatID]; ok {
		old.session.Close()
	}
	cs := &chatSession{
		session:  calculator.NewSession(b.controller(ctx, locale), b.sinks(chatID), locale),
		locale:   locale,
		lastSeen: b.now(),
	}
	b.chats[chatID] = cs
	return cs
}

func (b *Bot) controller(ctx context.Context, locale string) *calculator.Controller {
	return calculator.NewController(b.catalog.Load(ctx, locale), b.resolver)
}

func (b *Bot) saveChatState(ctx context.Context, chatID int64, cs *chatSession) {
	rec := redis.WizardRecord{
		State:    cs.session.State(),
		Locale:   cs.locale,
		Contact:  cs.draft,
		Awaiting: cs.awaiting,
	}
	if err := b.state.SetChatState(ctx, chatID, rec); err != nil {
		b.logger.Error("Failed to save chat state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	for _, id := range b.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func userLanguage(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return u.LanguageCode
}

func (b *Bot) answerCallback(id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}

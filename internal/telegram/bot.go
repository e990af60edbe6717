package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"drugbot/internal/auth"
	"drugbot/internal/drug"
	"drugbot/internal/session"
	"drugbot/internal/stats"
)

// sender abstracts the Telegram API for tests.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

// Bot wires the matching engine to Telegram chats. The engine itself is
// stateless; everything conversational (pending disambiguation, pending
// access requests) lives on the Bot and its session manager.
type Bot struct {
	api        *tgbotapi.BotAPI
	s          sender
	authSvc    *auth.Service
	store      *drug.Store
	classifier *drug.Classifier
	sessions   *session.Manager
	usage      *stats.Counter

	pending     map[int64]auth.User
	pendingRepo auth.Repository
	adminUserID int64
}

func New(
	botToken string,
	authSvc *auth.Service,
	store *drug.Store,
	classifier *drug.Classifier,
	adminUserID int64,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		authSvc:     authSvc,
		store:       store,
		classifier:  classifier,
		sessions:    session.NewManager(),
		usage:       stats.NewCounter(),
		pending:     make(map[int64]auth.User),
		adminUserID: adminUserID,
	}, nil
}

// SetPendingRepo persists access requests across restarts.
func (b *Bot) SetPendingRepo(repo auth.Repository) {
	b.pendingRepo = repo
	if repo == nil {
		return
	}
	users, err := repo.LoadAll()
	if err != nil {
		log.Printf("failed to preload pending users: %v", err)
		return
	}
	for _, u := range users {
		b.pending[u.ID] = u
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
				continue
			}
		}
	}
}

// SendUsageReport posts the per-category question counts since the last
// report to the admin chat. Counts only; question text is never recorded.
func (b *Bot) SendUsageReport(ctx context.Context) error {
	if b.adminUserID == 0 {
		return nil
	}
	counts, since := b.usage.Snapshot()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 사용 현황 (%s UTC 이후)\n", since.Format(time.DateTime)))
	sb.WriteString(fmt.Sprintf("• 성분 조회: %d건\n", counts[statIngredient]))
	sb.WriteString(fmt.Sprintf("• 상호작용 조회: %d건\n", counts[statInteraction]))
	sb.WriteString(fmt.Sprintf("• 미인식 질문: %d건", counts[statUnknown]))
	if _, err := b.s.Send(tgbotapi.NewMessage(b.adminUserID, sb.String())); err != nil {
		return fmt.Errorf("send usage report: %w", err)
	}
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"drugbot/internal/auth"
	"drugbot/internal/drug"
	"drugbot/internal/intent"
	"drugbot/internal/session"
)

const (
	pickPrefix    = "pick:"
	approvePrefix = "approve:"
	denyPrefix    = "deny:"

	statIngredient  = "ingredient"
	statInteraction = "interaction"
	statUnknown     = "unknown"
)

const greeting = "안녕하세요! 약물 상호작용 챗봇입니다.\n\n[질문 예시]\n1. 타이레놀 성분이 뭐야?\n2. 타이레놀과 아스피린을 같이 복용해도 돼?"

// levelLabels maps engine verdict levels to the Korean labels shown in chat.
var levelLabels = map[drug.Level]string{
	drug.LevelSafe:         "안전",
	drug.LevelCaution:      "주의",
	drug.LevelDanger:       "위험",
	drug.LevelAmbiguous:    "정보 확인",
	drug.LevelError:        "오류",
	drug.LevelInsufficient: "정보 없음",
}

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	if !b.authSvc.IsAllowed(msg.From.ID) {
		b.handleUnauthorized(msg)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.sendMessage(msg.Chat.ID, greeting)
		case "report":
			if msg.From.ID == b.adminUserID {
				if err := b.SendUsageReport(context.Background()); err != nil {
					log.Printf("on-demand usage report failed: %v", err)
				}
			}
		}
		return
	}

	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	// Typing a new question abandons any pending product selection.
	b.sessions.Clear(msg.Chat.ID)

	parsed := intent.Parse(msg.Text)
	switch parsed.Kind {
	case intent.KindIngredient:
		b.usage.Inc(statIngredient)
		if parsed.Drug == "" {
			b.sendMessage(msg.Chat.ID, "❌ 약물 이름을 입력해주세요.")
			return
		}
		b.handleIngredientQuery(msg.Chat.ID, parsed.Drug)
	case intent.KindInteraction:
		b.usage.Inc(statInteraction)
		if parsed.DrugA == "" || parsed.DrugB == "" {
			b.sendMessage(msg.Chat.ID, "❌ 두 약물 이름을 정확히 입력해주세요.")
			return
		}
		b.handleInteractionQuery(msg.Chat.ID, parsed.DrugA, parsed.DrugB)
	default:
		b.usage.Inc(statUnknown)
		b.sendMessage(msg.Chat.ID, "🤔 죄송합니다. 질문 형식을 이해하지 못했습니다.")
	}
}

func (b *Bot) handleIngredientQuery(chatID int64, name string) {
	records, err := b.store.Search(name)
	if err != nil {
		log.Printf("ingredient search failed for %q: %v", name, err)
		b.sendMessage(chatID, "❌ 데이터베이스 검색 중 오류가 발생했습니다.")
		return
	}
	if len(records) == 0 {
		b.sendMessage(chatID, fmt.Sprintf("❌ '%s' 정보를 찾을 수 없습니다.", name))
		return
	}

	products := drug.MatchingProducts(records, name)
	switch {
	case len(products) > 1:
		b.sessions.Set(chatID, session.Pending{Query: name, Options: products})
		text := fmt.Sprintf("🔍 '%s' 관련 제품이 %d개 발견되었습니다.\n아래에서 원하시는 제품을 선택해주세요.", name, len(products))
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = optionsKeyboard(products)
		if _, err := b.s.Send(msg); err != nil {
			log.Printf("failed to send selection keyboard: %v", err)
		}
	case len(products) == 1:
		b.replyIngredients(chatID, products[0], records)
	default:
		// Matched on an ingredient column only; there is no product to name.
		b.sendMessage(chatID, fmt.Sprintf("ℹ️ '%s'에 대한 정확한 제품 정보를 찾을 수 없습니다.", name))
	}
}

func (b *Bot) replyIngredients(chatID int64, product string, records []drug.Record) {
	ingredients := drug.Ingredients(records, product)
	if len(ingredients) == 0 {
		b.sendMessage(chatID, fmt.Sprintf("ℹ️ '%s'을(를) 선택하셨으나, 성분 정보를 찾을 수 없습니다.", product))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("✅ '%s'의 성분은 다음과 같습니다:\n\n• %s", product, strings.Join(ingredients, ", ")))
}

func (b *Bot) handleInteractionQuery(chatID int64, drugA, drugB string) {
	verdict := b.classifier.Classify(drugA, drugB)
	details := strings.Join(verdict.Reasons, "\n\n")
	if verdict.Level == drug.LevelInsufficient {
		b.sendMessage(chatID, "💊 분석 불가\n\n"+details)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("💊 위험도: %s\n\n💡 상세 정보:\n\n%s", levelLabels[verdict.Level], details))
}

// optionsKeyboard lays the candidates out in rows of up to three buttons.
// Callback data is an index into the session's option list: product names
// routinely exceed Telegram's 64-byte callback data limit.
func optionsKeyboard(options []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, opt := range options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(opt, pickPrefix+strconv.Itoa(i)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if b.api != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("failed to answer callback: %v", err)
		}
	}

	switch {
	case strings.HasPrefix(cb.Data, pickPrefix):
		b.handlePick(cb)
	case strings.HasPrefix(cb.Data, approvePrefix):
		id, _ := strconv.ParseInt(strings.TrimPrefix(cb.Data, approvePrefix), 10, 64)
		b.approveUser(id)
	case strings.HasPrefix(cb.Data, denyPrefix):
		id, _ := strconv.ParseInt(strings.TrimPrefix(cb.Data, denyPrefix), 10, 64)
		b.denyUser(id)
	}
}

func (b *Bot) handlePick(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	p, ok := b.sessions.Take(chatID)
	if !ok {
		b.sendMessage(chatID, "ℹ️ 선택할 제품이 없습니다. 질문을 다시 입력해주세요.")
		return
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(cb.Data, pickPrefix))
	if err != nil || idx < 0 || idx >= len(p.Options) {
		b.sendMessage(chatID, "ℹ️ 선택할 제품이 없습니다. 질문을 다시 입력해주세요.")
		return
	}
	product := p.Options[idx]

	records, err := b.store.Search(product)
	if err != nil {
		log.Printf("ingredient search failed for picked product %q: %v", product, err)
		b.sendMessage(chatID, "❌ 데이터베이스 검색 중 오류가 발생했습니다.")
		return
	}
	b.replyIngredients(chatID, product, records)
}

func (b *Bot) handleUnauthorized(msg *tgbotapi.Message) {
	log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
	if _, ok := b.pending[msg.From.ID]; ok {
		b.sendMessage(msg.Chat.ID, "접근 요청이 이미 관리자에게 전달되었습니다. 승인될 때까지 기다려주세요.")
		return
	}
	u := auth.User{ID: msg.From.ID, Username: msg.From.UserName, FirstName: msg.From.FirstName, LastName: msg.From.LastName}
	b.pending[msg.From.ID] = u
	if b.pendingRepo != nil {
		_ = b.pendingRepo.Upsert(u)
	}
	b.sendMessage(msg.Chat.ID, "접근 요청이 관리자에게 전달되었습니다. 승인되면 알려드리겠습니다.")
	b.notifyAdminRequest(msg.From.ID, msg.From.UserName)
}

func (b *Bot) notifyAdminRequest(userID int64, username string) {
	if b.adminUserID == 0 {
		return
	}
	text := fmt.Sprintf("사용자 %d (@%s)님이 봇 사용을 요청했습니다.", userID, username)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("승인", approvePrefix+strconv.FormatInt(userID, 10)),
			tgbotapi.NewInlineKeyboardButtonData("거절", denyPrefix+strconv.FormatInt(userID, 10)),
		),
	)
	msg := tgbotapi.NewMessage(b.adminUserID, text)
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to notify admin: %v", err)
	}
}

func (b *Bot) approveUser(userID int64) {
	u, ok := b.pending[userID]
	if !ok {
		u = auth.User{ID: userID}
	}
	if err := b.authSvc.Upsert(u); err != nil {
		log.Printf("failed to persist approved user %d: %v", userID, err)
	}
	delete(b.pending, userID)
	if b.pendingRepo != nil {
		_ = b.pendingRepo.Remove(userID)
	}
	b.sendMessage(userID, "승인되었습니다! "+greeting)
	if b.adminUserID != 0 {
		b.sendMessage(b.adminUserID, fmt.Sprintf("사용자 %d 승인 완료", userID))
	}
}

func (b *Bot) denyUser(userID int64) {
	delete(b.pending, userID)
	if b.pendingRepo != nil {
		_ = b.pendingRepo.Remove(userID)
	}
	b.sendMessage(userID, "죄송합니다. 접근이 거절되었습니다.")
	if b.adminUserID != 0 {
		b.sendMessage(b.adminUserID, fmt.Sprintf("사용자 %d 거절 완료", userID))
	}
}

package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "omr-bot/internal/application"
	"omr-bot/internal/container"
	"omr-bot/internal/domain/entity"
	"omr-bot/internal/infrastructure/answerkey"
	"omr-bot/internal/infrastructure/export"
)

const (
	msgStart = `👋 Привет! Я проверяю бланки ответов (120 вопросов, 5 вариантов).

1️⃣ Выберите режим: /single или /multi
2️⃣ Пришлите ключ ответов файлом CSV или XLSX
3️⃣ Присылайте фото бланков, я верну балл и картинку с подсветкой

📋 Команды:
/single — один правильный вариант на вопрос
/multi — несколько правильных вариантов
/roster — загрузить список студентов
/results — ведомость (XLSX и CSV)
/clear — очистить ведомость
/debug on|off — отладочные картинки
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Формат ключа ответов:

• single: строки «вопрос,ответ», например 1,3
• multi: строки «вопрос,ответы через &», например 1,2&4

Список студентов: «код,имя,фамилия[,группа]».

💡 Рекомендации:
• Снимайте бланк целиком, сверху, при ровном освещении
• Отправляйте фото файлом, чтобы Telegram его не сжимал
• Зелёный — верно, жёлтый — частично, красный — неверно`

	msgAwaitingKeySingle = "📄 Режим single. Пришлите ключ ответов: файл CSV или XLSX со строками «вопрос,ответ»."
	msgAwaitingKeyMulti  = "📄 Режим multi. Пришлите ключ ответов: файл CSV или XLSX со строками «вопрос,1&3»."
	msgAwaitingSheets    = "📸 Ключ загружен. Присылайте фото бланков."
	msgAwaitingRoster    = "👥 Пришлите список студентов: файл CSV или XLSX «код,имя,фамилия»."
	msgCancelled         = "❌ Операция отменена. Ключ и список студентов сохранены."
	msgChooseMode        = "Сначала выберите режим: /single или /multi."
	msgSendRoster        = "👥 Жду файл со списком студентов."
	msgSendSheet         = "📸 Пришлите фото бланка."
	msgUnknownCommand    = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing        = "⏳ Проверяю бланк..."
	msgProcessingError   = "⚠️ Не удалось обработать файл. Попробуйте ещё раз."
	msgDebugUsage        = "Используйте /debug on или /debug off."
	msgNoResults         = "📭 Ведомость пуста."
	msgCleared           = "🧹 Ведомость очищена."
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api: api,
		app: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch {
	case msg.Document != nil:
		b.handleDocument(ctx, msg, user)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg, user)
	default:
		b.sendMessage(msg.Chat.ID, prompt(user))
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.app.UserService.Cancel(ctx, userID, chatID); err != nil {
			log.Printf("Error resetting user %d: %v", userID, err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "single", "multi":
		mode, _ := entity.ParseMode(msg.Command())
		user, err := b.app.UserService.BeginCheck(ctx, userID, chatID, mode)
		if err != nil {
			log.Printf("Error selecting mode for user %d: %v", userID, err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, prompt(user))

	case "roster":
		if _, err := b.app.UserService.AwaitRoster(ctx, userID, chatID); err != nil {
			log.Printf("Error awaiting roster for user %d: %v", userID, err)
			return
		}
		b.sendMessage(chatID, msgAwaitingRoster)

	case "debug":
		on, ok := parseSwitch(msg.CommandArguments())
		if !ok {
			b.sendMessage(chatID, msgDebugUsage)
			return
		}
		if _, err := b.app.UserService.SetDebug(ctx, userID, chatID, on); err != nil {
			log.Printf("Error setting debug for user %d: %v", userID, err)
			return
		}
		if on {
			b.sendMessage(chatID, "🛠 Отладка включена.")
		} else {
			b.sendMessage(chatID, "🛠 Отладка выключена.")
		}

	case "results":
		b.sendResults(ctx, msg)

	case "clear":
		if err := b.app.GradingService.ClearResults(ctx, userID); err != nil {
			log.Printf("Error clearing results for user %d: %v", userID, err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, msgCleared)

	case "cancel":
		if _, err := b.app.UserService.Cancel(ctx, userID, chatID); err != nil {
			log.Printf("Error cancelling for user %d: %v", userID, err)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleDocument принимает ключ, список студентов или бланк, отправленный файлом
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	doc := msg.Document

	if user.State == entity.StateAwaitingSheets && strings.HasPrefix(doc.MimeType, "image/") {
		b.gradeFile(ctx, msg, doc.FileID, doc.FileName)
		return
	}
	if user.State != entity.StateAwaitingKey && user.State != entity.StateAwaitingRoster {
		b.sendMessage(msg.Chat.ID, prompt(user))
		return
	}

	data, err := b.downloadFile(doc.FileID)
	if err != nil {
		log.Printf("Error downloading document: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if user.State == entity.StateAwaitingRoster {
		roster, err := answerkey.ParseRoster(doc.FileName, data)
		if err != nil {
			b.sendMessage(msg.Chat.ID, "⚠️ Не удалось прочитать список студентов: "+err.Error())
			return
		}
		user, err = b.app.UserService.SetRoster(ctx, msg.From.ID, msg.Chat.ID, roster)
		if err != nil {
			log.Printf("Error saving roster: %v", err)
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("👥 Список загружен: %d студентов.\n%s", len(roster), prompt(user)))
		return
	}

	key, err := answerkey.ParseKey(doc.FileName, data, user.Mode)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "⚠️ Не удалось прочитать ключ ответов: "+err.Error())
		return
	}
	if _, err := b.app.UserService.SetKey(ctx, msg.From.ID, msg.Chat.ID, key); err != nil {
		b.sendMessage(msg.Chat.ID, "⚠️ "+err.Error())
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Ключ загружен: %d вопросов (%s).\n%s", key.Len(), key.Mode, msgAwaitingSheets))
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	if user.State != entity.StateAwaitingSheets {
		b.sendMessage(msg.Chat.ID, prompt(user))
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]
	b.gradeFile(ctx, msg, photo.FileID, fmt.Sprintf("photo_%d.jpg", msg.MessageID))
}

// gradeFile скачивает бланк, проверяет и отвечает итогом и картинкой с подсветкой
func (b *Bot) gradeFile(ctx context.Context, msg *tgbotapi.Message, fileID, name string) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.app.GradingService.GradeSheet(ctx, msg.From.ID, msg.Chat.ID, app.Upload{Name: name, Data: imageData})
	if err != nil {
		log.Printf("Error grading %s: %v", name, err)
		if errors.Is(err, app.ErrNotReady) {
			b.sendMessage(msg.Chat.ID, msgChooseMode)
			return
		}
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	summary := formatSheet(out.Sheet)
	if len(out.Rendition) == 0 {
		b.sendMessage(msg.Chat.ID, summary)
		return
	}
	reply := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: out.Sheet.RenditionName, Bytes: out.Rendition})
	reply.Caption = summary
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Error sending rendition: %v", err)
		b.sendMessage(msg.Chat.ID, summary)
	}
}

// sendResults отправляет ведомость текстом и файлами
func (b *Bot) sendResults(ctx context.Context, msg *tgbotapi.Message) {
	sheets, err := b.app.GradingService.Results(ctx, msg.From.ID)
	if err != nil {
		log.Printf("Error loading results: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	if len(sheets) == 0 {
		b.sendMessage(msg.Chat.ID, msgNoResults)
		return
	}

	b.sendMessage(msg.Chat.ID, formatResults(sheets))

	var xlsx bytes.Buffer
	if err := export.WriteWorkbook(&xlsx, sheets, app.Questions); err != nil {
		log.Printf("Error writing workbook: %v", err)
	} else {
		b.sendDocument(msg.Chat.ID, "omr_results.xlsx", xlsx.Bytes())
	}

	var csv bytes.Buffer
	if err := export.WriteCSV(&csv, sheets); err != nil {
		log.Printf("Error writing csv: %v", err)
	} else {
		b.sendDocument(msg.Chat.ID, "omr_results.csv", csv.Bytes())
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) sendDocument(chatID int64, name string, data []byte) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending %s: %v", name, err)
	}
}

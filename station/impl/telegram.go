package impl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ddx/envstation/stats"
)

var buttons = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("run stats"),
	),
)

func (s *stationImpl) telegramStart() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := s.tg.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil {
			continue
		}
		s.logger.Infof("[%s] %s", update.Message.From.UserName, update.Message.Text)

		msgText := "no readings recorded yet"
		if s.csvPath != "" {
			summary, err := stats.FromCSV(s.csvPath)
			if err != nil {
				s.logger.Warnf("cannot compute statistics: %s", err)
			} else {
				msgText = summary.String()
			}
		}
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, msgText)
		msg.ReplyToMessageID = update.Message.MessageID
		msg.ReplyMarkup = buttons

		if _, err := s.tg.Send(msg); err != nil {
			s.logger.Warnf("error: %s", err)
		}
	}
}

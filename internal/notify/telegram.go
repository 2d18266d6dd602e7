package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/msgcache"
)

type telegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*tgmodels.Message, error)
}

// TelegramSender posts to the staff chat. The message id of each booking
// announcement is remembered so status changes edit it in place.
type TelegramSender struct {
	api    telegramAPI
	chatID int64
	cache  msgcache.Store
	log    *zap.Logger
}

func NewTelegramSender(token string, chatID int64, cache msgcache.Store, log *zap.Logger) (*TelegramSender, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return newTelegramSender(b, chatID, cache, log), nil
}

func newTelegramSender(api telegramAPI, chatID int64, cache msgcache.Store, log *zap.Logger) *TelegramSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &TelegramSender{api: api, chatID: chatID, cache: cache, log: log}
}

func (s *TelegramSender) send(ctx context.Context, text string) (*tgmodels.Message, error) {
	return s.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: tgmodels.ParseModeHTML,
	})
}

func (s *TelegramSender) post(ctx context.Context, b *models.Booking, text string) error {
	msg, err := s.send(ctx, text)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}

	if err := s.cache.Remember(ctx, bookingKey(b.ID), msg.ID); err != nil {
		s.log.Warn("remember telegram message failed", zap.Uint("booking_id", b.ID), zap.Error(err))
	}
	return nil
}

func (s *TelegramSender) NotifyNewBooking(ctx context.Context, b *models.Booking) error {
	return s.post(ctx, b, bookingHTML("New booking", b))
}

// NotifyBookingStatus edits the original announcement when it is still
// known, otherwise it posts a fresh one.
func (s *TelegramSender) NotifyBookingStatus(ctx context.Context, b *models.Booking) error {
	text := bookingHTML("Booking updated", b)

	messageID, ok, err := s.cache.Lookup(ctx, bookingKey(b.ID))
	if err != nil {
		s.log.Warn("lookup telegram message failed", zap.Uint("booking_id", b.ID), zap.Error(err))
	}
	if !ok {
		return s.post(ctx, b, text)
	}

	_, err = s.api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    s.chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: tgmodels.ParseModeHTML,
	})
	if err == nil || isMessageNotModified(err) {
		return nil
	}

	s.log.Info("telegram edit failed, posting new message", zap.Uint("booking_id", b.ID), zap.Error(err))
	return s.post(ctx, b, text)
}

// NotifyBookingDeleted marks the original announcement as deleted and drops
// its remembered message id. Unknown bookings are ignored.
func (s *TelegramSender) NotifyBookingDeleted(ctx context.Context, b *models.Booking) error {
	key := bookingKey(b.ID)

	messageID, ok, err := s.cache.Lookup(ctx, key)
	if err != nil {
		s.log.Warn("lookup telegram message failed", zap.Uint("booking_id", b.ID), zap.Error(err))
	}
	if !ok {
		return nil
	}

	if err := s.cache.Forget(ctx, key); err != nil {
		s.log.Warn("forget telegram message failed", zap.Uint("booking_id", b.ID), zap.Error(err))
	}

	_, err = s.api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    s.chatID,
		MessageID: messageID,
		Text:      bookingHTML("Booking deleted", b),
		ParseMode: tgmodels.ParseModeHTML,
	})
	if err != nil && !isMessageNotModified(err) {
		return fmt.Errorf("telegram edit: %w", err)
	}
	return nil
}

func (s *TelegramSender) NotifyContactMessage(ctx context.Context, m *models.ContactMessage) error {
	if _, err := s.send(ctx, messageHTML(m)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func isMessageNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"recruit-platform/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram posts notifications to a single chat.
type Telegram struct {
	bot    *tele.Bot
	chat   tele.ChatID
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("telegram notifier initialized", zap.Int64("chat_id", chatID))

	return &Telegram{
		bot:    b,
		chat:   tele.ChatID(chatID),
		logger: logger,
	}, nil
}

func (t *Telegram) ApplicationSubmitted(ctx context.Context, job *models.JobPosting, app *models.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.bot.Send(t.chat, FormatApplication(job, app), tele.ModeMarkdownV2); err != nil {
		t.logger.Error("failed to send application notification",
			zap.Int64("job_id", job.ID),
			zap.Int64("application_id", app.ID),
			zap.Error(err),
		)
		return fmt.Errorf("send notification: %w", err)
	}

	t.logger.Debug("application notification sent",
		zap.Int64("job_id", job.ID),
		zap.Int64("application_id", app.ID),
	)

	return nil
}

func FormatApplication(job *models.JobPosting, app *models.Application) string {
	var sb strings.Builder

	sb.WriteString("📨 *New application*\n\n")
	sb.WriteString(fmt.Sprintf("💼 *Job:* %s \\(\\#%d\\)\n", EscapeMarkdown(job.Title), job.ID))
	sb.WriteString(fmt.Sprintf("👤 *Candidate:* \\#%d\n", app.CandidateID))
	sb.WriteString(fmt.Sprintf("📄 *Resume:* %s\n", EscapeMarkdown(filepath.Base(app.ResumePath))))
	sb.WriteString(fmt.Sprintf("📋 *Status:* %s", EscapeMarkdown(string(app.Status))))

	return sb.String()
}

func EscapeMarkdown(text string) string {
	// \ _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(text)
}

package bot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dentalsite/internal/forms"
	"dentalsite/internal/storage"
)

const exportLimit = 5000

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, cmd string) {
	if b.leads == nil {
		b.sendError(chatID, "Lead storage is not available in this process")
		return
	}

	switch cmd {
	case "export":
		b.handleExportLeads(ctx, chatID)
	case "stats":
		b.handleLeadStats(ctx, chatID)
	default:
		b.sendError(chatID, "Unknown admin command")
	}
}

func (b *Bot) handleExportLeads(ctx context.Context, chatID int64) {
	leads, err := b.leads.ListLeads(ctx, exportLimit)
	if err != nil {
		b.logger.Error("Failed to list leads", zap.Error(err))
		b.sendError(chatID, "Failed to export leads")
		return
	}

	var buf bytes.Buffer
	if err := storage.WriteLeadsWorkbook(&buf, leads); err != nil {
		b.logger.Error("Failed to build leads workbook", zap.Error(err))
		b.sendError(chatID, "Failed to export leads")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("leads_%s.xlsx", time.Now().Format("20060102")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 Leads: %d", len(leads))

	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send leads export",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Failed to send the export file")
	}
}

func (b *Bot) handleLeadStats(ctx context.Context, chatID int64) {
	stats, err := b.leads.LeadStatistics(ctx)
	if err != nil {
		b.logger.Error("Failed to get lead statistics", zap.Error(err))
		b.sendError(chatID, "Failed to load statistics")
		return
	}

	msgText := fmt.Sprintf(
		"📊 *Lead statistics*\n\n"+
			"📌 Total: %d\n"+
			"📅 Today: %d\n"+
			"📅 This week: %d\n"+
			"📅 This month: %d\n"+
			"💰 Estimated value: %s\n\n"+
			"📌 By kind:\n"+
			"✉️ Contact: %d\n"+
			"📞 Callback: %d\n"+
			"🦷 Estimate: %d",
		stats.TotalLeads,
		stats.TodayLeads,
		stats.WeekLeads,
		stats.MonthLeads,
		printer(b.cfg.DefaultLocale).Sprintf("%d %s", stats.EstimateValue, b.cfg.Currency.String()),
		stats.KindCounts[string(forms.KindContact)],
		stats.KindCounts[string(forms.KindCallback)],
		stats.KindCounts[string(forms.KindEstimate)],
	)

	msg := tgbotapi.NewMessage(chatID, msgText)
	msg.ParseMode = "Markdown"
	b.sendMessage(msg)
}

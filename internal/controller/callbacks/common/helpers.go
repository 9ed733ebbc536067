package common

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// CallbackArg возвращает часть callback data после префикса.
// Например: CallbackArg("wiz_date:2025-09-01", "wiz_date:") -> "2025-09-01"
func CallbackArg(data, prefix string) string {
	return strings.TrimPrefix(data, prefix)
}

// CallbackArgs разбивает хвост callback data по двоеточиям.
// Например: CallbackArgs("rate_star:abc:4", "rate_star:") -> ["abc", "4"]
func CallbackArgs(data, prefix string) []string {
	arg := strings.TrimPrefix(data, prefix)
	if arg == "" {
		return nil
	}
	return strings.Split(arg, ":")
}

// Package telegram sends the weekly contest digest to a Telegram chat through the Bot API.
//
// Only sendMessage is used, so the client is a thin JSON-over-HTTP wrapper.
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram

// Package notifier delivers the weekly contest digest to people.
//
// Every channel (Telegram, Twitter, email, or a dry run to stdout) implements the same
// Notifier interface and receives the whole schedule, which it renders with the digest
// package before sending.
package notifier

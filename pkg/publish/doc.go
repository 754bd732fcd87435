/*
Package publish sends generated text to social platforms and keeps a local
SQLite ledger of what was sent.

Publishers are built from environment credentials with New. Discord and
Telegram bots are supported. The Ledger stores each published status so the
same text is not posted twice.
*/
package publish

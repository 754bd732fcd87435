package publish

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Post is one published status as recorded in the Ledger.
type Post struct {
	ID          int64
	Platform    string
	RemoteID    string
	Body        string
	PublishedAt time.Time
}

// SetupSchema initializes the ledger table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaPosts = `
CREATE TABLE IF NOT EXISTS published_posts (
    post_id INTEGER PRIMARY KEY,
    platform TEXT NOT NULL,
    remote_id TEXT NOT NULL,
    body TEXT NOT NULL,
    published_at INTEGER NOT NULL,
    UNIQUE (platform, body)
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaPosts); err != nil {
		return fmt.Errorf("could not create ledger schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Ledger is a history of published statuses, used to avoid posting the same
// text twice to a platform.
type Ledger struct {
	db         *sql.DB
	stmtSeen   *sql.Stmt
	stmtRecord *sql.Stmt
	stmtRecent *sql.Stmt
	stmtCount  *sql.Stmt
	logger     *slog.Logger
}

// NewLedger prepares the ledger's statements against db. SetupSchema must have
// been called on db first.
func NewLedger(db *sql.DB) (*Ledger, error) {
	stmtSeen, err := db.Prepare(`SELECT COUNT(*) FROM published_posts WHERE platform = ? AND body = ?;`)
	if err != nil {
		return nil, fmt.Errorf("could not prepare seen statement: %w", err)
	}

	stmtRecord, err := db.Prepare(`INSERT INTO published_posts (platform, remote_id, body, published_at) VALUES (?, ?, ?, ?);`)
	if err != nil {
		closeStmts(stmtSeen)
		return nil, fmt.Errorf("could not prepare record statement: %w", err)
	}

	stmtRecent, err := db.Prepare(`SELECT post_id, platform, remote_id, body, published_at FROM published_posts ORDER BY published_at DESC, post_id DESC LIMIT ?;`)
	if err != nil {
		closeStmts(stmtSeen, stmtRecord)
		return nil, fmt.Errorf("could not prepare recent statement: %w", err)
	}

	stmtCount, err := db.Prepare(`SELECT COUNT(*) FROM published_posts;`)
	if err != nil {
		closeStmts(stmtSeen, stmtRecord, stmtRecent)
		return nil, fmt.Errorf("could not prepare count statement: %w", err)
	}

	return &Ledger{
		db:         db,
		stmtSeen:   stmtSeen,
		stmtRecord: stmtRecord,
		stmtRecent: stmtRecent,
		stmtCount:  stmtCount,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements. The database itself stays open.
func (l *Ledger) Close() {
	closeStmts(l.stmtSeen, l.stmtRecord, l.stmtRecent, l.stmtCount)
}

func closeStmts(stmts ...*sql.Stmt) {
	for _, stmt := range stmts {
		_ = stmt.Close()
	}
}

// SetLogger sets the logger for the Ledger. By default, all logs are discarded.
func (l *Ledger) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Seen reports whether body was already published to platform.
func (l *Ledger) Seen(ctx context.Context, platform, body string) (bool, error) {
	var count int
	if err := l.stmtSeen.QueryRowContext(ctx, platform, body).Scan(&count); err != nil {
		return false, fmt.Errorf("could not query ledger: %w", err)
	}
	return count > 0, nil
}

// Record stores a published post. A zero PublishedAt is set to the current time.
func (l *Ledger) Record(ctx context.Context, post Post) error {
	if post.PublishedAt.IsZero() {
		post.PublishedAt = time.Now()
	}
	res, err := l.stmtRecord.ExecContext(ctx, post.Platform, post.RemoteID, post.Body, post.PublishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("could not record %s post %s: %w", post.Platform, post.RemoteID, err)
	}
	id, _ := res.LastInsertId()

	l.logger.InfoContext(ctx, "Post recorded",
		slog.Int64("post_id", id),
		slog.String("platform", post.Platform),
		slog.String("remote_id", post.RemoteID),
	)
	return nil
}

// Recent returns up to limit posts, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Post, error) {
	rows, err := l.stmtRecent.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var posts []Post
	for rows.Next() {
		var post Post
		var publishedAt int64
		if err = rows.Scan(&post.ID, &post.Platform, &post.RemoteID, &post.Body, &publishedAt); err != nil {
			return nil, err
		}
		post.PublishedAt = time.UnixMilli(publishedAt)
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of recorded posts.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var count int
	if err := l.stmtCount.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements MessageStore on a local SQLite file, handy for
// single-host bots that do not want to run a database server.
type SQLiteStore struct {
	DB *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS chat_messages (
        chat_id    INTEGER NOT NULL,
        message_id INTEGER NOT NULL,
        ts         INTEGER NOT NULL,
        user_id    INTEGER NOT NULL,
        username   TEXT NOT NULL,
        body       TEXT NOT NULL,
        reply_to   INTEGER,
        thread_id  INTEGER,
        forward_from TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (chat_id, message_id)
);
CREATE INDEX IF NOT EXISTS chat_messages_ts_idx ON chat_messages (chat_id, ts);
`

// NewSQLiteStore opens (creating if needed) a SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return &SQLiteStore{DB: db}, nil
}

// CreateSchema ensures the message table and its timestamp index exist.
func (ss *SQLiteStore) CreateSchema(ctx context.Context) error {
	if ss == nil || ss.DB == nil {
		return nil
	}
	_, err := ss.DB.ExecContext(ctx, sqliteSchema)
	return err
}

// Append inserts messages inside one transaction, ignoring duplicates.
func (ss *SQLiteStore) Append(ctx context.Context, msgs []StoredMessage) error {
	if ss == nil || ss.DB == nil || len(msgs) == 0 {
		return nil
	}
	tx, err := ss.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `
        INSERT OR IGNORE INTO chat_messages (chat_id, message_id, ts, user_id, username, body, reply_to, thread_id, forward_from)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
        `
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, query,
			m.ChatID, m.MessageID, m.Timestamp, m.UserID, m.Username, m.Text,
			m.ReplyToMessageID, m.ThreadID, m.ForwardFromName); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Query retrieves messages for one chat, mirroring the Postgres store's
// ordering contract: time-bounded ascending, count-bounded most recent first.
func (ss *SQLiteStore) Query(ctx context.Context, q MessageQuery) ([]StoredMessage, error) {
	if ss == nil || ss.DB == nil {
		return nil, nil
	}
	query := `
        SELECT chat_id, message_id, ts, user_id, username, body, reply_to, thread_id, forward_from
        FROM chat_messages
        WHERE chat_id = ?`
	args := []any{q.ChatID}
	if q.StartTime != 0 {
		query += " AND ts >= ?"
		args = append(args, q.StartTime)
	}
	if q.EndTime != 0 {
		query += " AND ts <= ?"
		args = append(args, q.EndTime)
	}
	if q.Limit > 0 {
		query += " ORDER BY ts DESC LIMIT ?;"
		args = append(args, q.Limit)
	} else {
		query += " ORDER BY ts ASC;"
	}

	rows, err := ss.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var replyTo, threadID sql.NullInt64
		if err := rows.Scan(&m.ChatID, &m.MessageID, &m.Timestamp, &m.UserID, &m.Username,
			&m.Text, &replyTo, &threadID, &m.ForwardFromName); err != nil {
			return nil, err
		}
		if replyTo.Valid {
			v := replyTo.Int64
			m.ReplyToMessageID = &v
		}
		if threadID.Valid {
			v := threadID.Int64
			m.ThreadID = &v
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Close closes the underlying database handle.
func (ss *SQLiteStore) Close() error {
	if ss == nil || ss.DB == nil {
		return nil
	}
	return ss.DB.Close()
}

var (
	_ MessageStore      = (*SQLiteStore)(nil)
	_ Appender          = (*SQLiteStore)(nil)
	_ SchemaInitializer = (*SQLiteStore)(nil)
)

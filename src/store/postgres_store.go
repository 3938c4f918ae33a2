package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements MessageStore on top of a Postgres table.
type PostgresStore struct {
	DB *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS chat_messages (
        chat_id    BIGINT NOT NULL,
        message_id BIGINT NOT NULL,
        ts         BIGINT NOT NULL,
        user_id    BIGINT NOT NULL,
        username   TEXT NOT NULL,
        body       TEXT NOT NULL,
        reply_to   BIGINT,
        thread_id  BIGINT,
        forward_from TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (chat_id, message_id)
);
CREATE INDEX IF NOT EXISTS chat_messages_ts_idx ON chat_messages (chat_id, ts);
`

// NewPostgresStore connects to Postgres and returns a Postgres-backed MessageStore.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// CreateSchema ensures the message table and its timestamp index exist.
func (ps *PostgresStore) CreateSchema(ctx context.Context) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	_, err := ps.DB.Exec(ctx, postgresSchema)
	return err
}

// Append inserts messages, ignoring duplicates on (chat_id, message_id).
func (ps *PostgresStore) Append(ctx context.Context, msgs []StoredMessage) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	const query = `
        INSERT INTO chat_messages (chat_id, message_id, ts, user_id, username, body, reply_to, thread_id, forward_from)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (chat_id, message_id) DO NOTHING;
        `
	for _, m := range msgs {
		if _, err := ps.DB.Exec(ctx, query,
			m.ChatID, m.MessageID, m.Timestamp, m.UserID, m.Username, m.Text,
			m.ReplyToMessageID, m.ThreadID, m.ForwardFromName); err != nil {
			return err
		}
	}
	return nil
}

// Query retrieves messages for one chat. Time-bounded queries come back in
// ascending timestamp order; count-bounded queries come back most recent
// first, which callers reverse.
func (ps *PostgresStore) Query(ctx context.Context, q MessageQuery) ([]StoredMessage, error) {
	if ps == nil || ps.DB == nil {
		return nil, nil
	}
	sql := `
        SELECT chat_id, message_id, ts, user_id, username, body, reply_to, thread_id, forward_from
        FROM chat_messages
        WHERE chat_id = $1`
	args := []any{q.ChatID}
	if q.StartTime != 0 {
		args = append(args, q.StartTime)
		sql += fmt.Sprintf(" AND ts >= $%d", len(args))
	}
	if q.EndTime != 0 {
		args = append(args, q.EndTime)
		sql += fmt.Sprintf(" AND ts <= $%d", len(args))
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" ORDER BY ts DESC LIMIT $%d;", len(args))
	} else {
		sql += " ORDER BY ts ASC;"
	}

	rows, err := ps.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(&m.ChatID, &m.MessageID, &m.Timestamp, &m.UserID, &m.Username,
			&m.Text, &m.ReplyToMessageID, &m.ThreadID, &m.ForwardFromName); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Close releases the underlying Postgres connection pool.
func (ps *PostgresStore) Close() {
	if ps != nil && ps.DB != nil {
		ps.DB.Close()
	}
}

var (
	_ MessageStore      = (*PostgresStore)(nil)
	_ Appender          = (*PostgresStore)(nil)
	_ SchemaInitializer = (*PostgresStore)(nil)
)

// Command seed loads a JSON message log into a message store so digests can
// be tried locally without a live ingestion pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/recapd/recapd/src/config"
	"github.com/recapd/recapd/src/store"
)

// seedMessage mirrors store.StoredMessage with JSON field names for input
// files.
type seedMessage struct {
	ChatID           int64  `json:"chat_id"`
	Timestamp        int64  `json:"timestamp"`
	MessageID        int64  `json:"message_id"`
	UserID           int64  `json:"user_id"`
	Username         string `json:"username"`
	Text             string `json:"text"`
	ReplyToMessageID *int64 `json:"reply_to_message_id,omitempty"`
	ThreadID         *int64 `json:"thread_id,omitempty"`
	ForwardFromName  string `json:"forward_from_name,omitempty"`
}

func main() {
	fileFlag := flag.String("file", "", "Path to a JSON array of messages")
	storeFlag := flag.String("store", "", "Target store (sqlite, postgres, mongo); overrides RECAPD_STORE")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *fileFlag == "" {
		log.Fatal("a message file is required (-file)")
	}

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *fileFlag, err)
	}
	var seeds []seedMessage
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("failed to parse %s: %v", *fileFlag, err)
	}
	msgs := make([]store.StoredMessage, 0, len(seeds))
	for _, s := range seeds {
		msgs = append(msgs, store.StoredMessage{
			ChatID:           s.ChatID,
			Timestamp:        s.Timestamp,
			MessageID:        s.MessageID,
			UserID:           s.UserID,
			Username:         s.Username,
			Text:             s.Text,
			ReplyToMessageID: s.ReplyToMessageID,
			ThreadID:         s.ThreadID,
			ForwardFromName:  s.ForwardFromName,
		})
	}

	ctx := context.Background()
	target, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open message store: %v", err)
	}
	defer closeStore()

	if init, ok := target.(store.SchemaInitializer); ok {
		if err := init.CreateSchema(ctx); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
	}
	appender, ok := target.(store.Appender)
	if !ok {
		log.Fatalf("store %s does not accept writes", cfg.Store)
	}
	if err := appender.Append(ctx, msgs); err != nil {
		log.Fatalf("failed to append messages: %v", err)
	}
	fmt.Printf("seeded %d messages into %s\n", len(msgs), cfg.Store)
}

func openStore(ctx context.Context, cfg config.Config) (store.MessageStore, func(), error) {
	switch cfg.Store {
	case "sqlite":
		ss, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return ss, func() { _ = ss.Close() }, nil
	case "postgres":
		ps, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return ps, ps.Close, nil
	case "mongo":
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		return ms, func() { _ = ms.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store: %s", cfg.Store)
	}
}

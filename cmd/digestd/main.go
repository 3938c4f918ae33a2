package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/recapd/recapd"
	"github.com/recapd/recapd/src/cache"
	"github.com/recapd/recapd/src/config"
	"github.com/recapd/recapd/src/digest"
	"github.com/recapd/recapd/src/helpers"
	"github.com/recapd/recapd/src/models"
	"github.com/recapd/recapd/src/store"
)

func main() {
	chatsFlag := flag.String("chats", "", "Comma separated chat ids to digest")
	hoursFlag := flag.Int("hours", 0, "Digest the last N hours of messages")
	lastFlag := flag.Int("last", 0, "Digest the last N messages")
	providerFlag := flag.String("provider", "", "Backend provider (openai, anthropic, gemini, ollama, dummy); overrides RECAPD_PROVIDER")
	modelFlag := flag.String("model", "", "Model id; overrides RECAPD_MODEL")
	storeFlag := flag.String("store", "", "Message store (memory, sqlite, postgres, mongo); overrides RECAPD_STORE")
	concurrencyFlag := flag.Int("concurrency", 3, "Max chats digested in parallel")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	cfg := config.FromEnv()
	if *providerFlag != "" {
		cfg.Provider = *providerFlag
	}
	if *modelFlag != "" {
		cfg.Model = *modelFlag
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}

	chatIDs, err := helpers.ParseChatIDs(*chatsFlag)
	if err != nil {
		log.Fatalf("invalid -chats value: %v", err)
	}
	if len(chatIDs) == 0 {
		log.Fatal("at least one chat id is required (-chats)")
	}
	var r recapd.Range
	switch {
	case *hoursFlag > 0 && *lastFlag > 0:
		log.Fatal("-hours and -last are mutually exclusive")
	case *hoursFlag > 0:
		r = recapd.LastHours(*hoursFlag)
	case *lastFlag > 0:
		r = recapd.LastMessages(*lastFlag)
	default:
		r = recapd.LastHours(24)
	}

	ctx := context.Background()

	msgStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open message store: %v", err)
	}
	defer closeStore()

	backend, err := models.NewBackend(ctx, cfg.Provider, cfg.Model)
	if err != nil {
		log.Fatalf("failed to create backend: %v", err)
	}
	backend = wrapCache(backend, cfg)

	var call *models.Options
	if cfg.MaxTokens > 0 || cfg.Temperature > 0 {
		call = &models.Options{MaxTokens: cfg.MaxTokens, Temperature: float32(cfg.Temperature)}
	}

	engine, err := recapd.New(recapd.Options{
		Store:        msgStore,
		Backend:      backend,
		SafetyTokens: cfg.SafetyTokens,
		Split:        digest.SplitOptions{MinChunkLines: cfg.MinChunkLines, OverlapLines: cfg.OverlapLines},
		Format:       digest.FormatOptions{PreviewLimit: cfg.PreviewLimit},
		Call:         call,
	})
	if err != nil {
		log.Fatalf("failed to create engine: %v", err)
	}

	if len(chatIDs) == 1 {
		text, err := engine.Digest(ctx, chatIDs[0], r)
		if err != nil {
			if errors.Is(err, recapd.ErrNoMessages) {
				log.Fatalf("chat %d: nothing to summarize in the last %s", chatIDs[0], r)
			}
			log.Fatalf("digest failed: %v", err)
		}
		fmt.Println(text)
		return
	}

	results, err := engine.DigestAll(ctx, chatIDs, r, *concurrencyFlag)
	if err != nil {
		log.Fatalf("batch digest failed: %v", err)
	}
	for _, res := range results {
		fmt.Printf("=== chat %d ===\n", res.ChatID)
		switch {
		case errors.Is(res.Err, recapd.ErrNoMessages):
			fmt.Printf("nothing to summarize in the last %s\n", r)
		case res.Err != nil:
			fmt.Printf("error: %v\n", res.Err)
		default:
			fmt.Println(res.Digest)
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.MessageStore, func(), error) {
	switch cfg.Store {
	case "memory":
		return store.NewInMemoryStore(), func() {}, nil
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

func wrapCache(backend models.Backend, cfg config.Config) models.Backend {
	switch cfg.CacheBackend {
	case "lru":
		return models.NewCachedBackend(backend, cache.NewLRUCache(cfg.CacheSize, cfg.CacheTTL))
	case "redis":
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL, "recapd:")
		return models.NewCachedBackend(backend, rc)
	default:
		return backend
	}
}

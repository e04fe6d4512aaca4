package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/aikawa9376/kotori-bot/internal/bot"
	"github.com/aikawa9376/kotori-bot/internal/config"
	"github.com/aikawa9376/kotori-bot/internal/permissions"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	// Wire the blacklist store, falling back to memory when Redis is absent
	var redisClient *redis.Client
	blacklist := permissions.NewInMemory(permissions.SystemTime{})

	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
			log.Printf("Failed to connect to Redis: %v", pingErr)
			log.Println("Falling back to in-memory blacklist")
			redisClient = nil
		} else {
			log.Println("Using Redis for the blacklist")
			blacklist = permissions.NewRedis(redisClient, permissions.SystemTime{})
		}
		cancel()
	}

	perms := permissions.NewService(permissions.Snapshot{
		Owners:    cfg.Permission.Owners,
		SubOwners: cfg.Permission.SubOwners,
	}, dg.State, blacklist)

	b := bot.New(dg, perms, cfg.Discord.AppID, cfg.Discord.GuildID)
	b.RegisterBuiltins()

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	log.Println("Bot is running. Press Ctrl+C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	if err := b.Stop(); err != nil {
		log.Printf("Failed to close Discord session: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}
}

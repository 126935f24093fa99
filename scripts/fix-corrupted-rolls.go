package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/redis"
	rollhistory "github.com/KirkDiggler/dice-roller/internal/repositories/roll_history"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	redisAddr := cfg.RedisAddr

	client, err := redis.NewClient(redisAddr, &redis.Options{UseTLS: cfg.RedisTLS})
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisAddr)
	fmt.Println("Scanning roll history...")

	report, err := rollhistory.ScanRedis(ctx, client)
	if err != nil {
		log.Fatal("Scan failed:", err)
	}

	fmt.Printf("\nChecked %d records\n", report.Checked)
	if report.Clean() {
		fmt.Println("No problems found!")
		return
	}

	for _, id := range report.Corrupted {
		fmt.Printf("✗ Corrupted record %s (will be deleted)\n", id)
	}
	for _, id := range report.Dangling {
		fmt.Printf("✗ Index entry %s has no record (will be dropped)\n", id)
	}
	for _, record := range report.Unindexed {
		fmt.Printf("✗ Record %s missing from index (will be re-indexed)\n", record.ID)
	}

	fmt.Print("\nApply these repairs? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	if err := rollhistory.RepairRedis(ctx, client, report); err != nil {
		log.Fatal("Repair failed:", err)
	}
	fmt.Println("\nRepair complete!")
}

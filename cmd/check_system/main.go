// Environment diagnostic: reports which config values are present, pings the
// database, and verifies the Gemini key by listing available models (the
// ingestion pipeline breaks quietly when the key is stale).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	_ "github.com/jackc/pgx/v5/stdlib"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== System Check ===")
	fmt.Println("--- Configuration ---")
	printPresence("NEXT_PUBLIC_SUPABASE_URL", cfg.SupabaseURL != "")
	printPresence("NEXT_PUBLIC_SUPABASE_ANON_KEY", cfg.AnonKey != "")
	printPresence("SUPABASE_SERVICE_ROLE_KEY", cfg.ServiceRoleKey != "")
	printPresence("SUPABASE_DB_URL", cfg.DatabaseURL != "")
	printPresence("GEMINI_API_KEY", cfg.GeminiAPIKey != "")
	if cfg.APIBaseURL != "" {
		fmt.Printf("API base URL: %s\n", cfg.APIBaseURL)
	} else {
		fmt.Println("API base URL not set (upload probe will be skipped)")
	}

	if cfg.DatabaseURL != "" {
		fmt.Println("\n--- Database ---")
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer db.Close()

		var version string
		if err := db.QueryRow("SELECT version()").Scan(&version); err != nil {
			fmt.Printf("❌ Query failed: %v\n", err)
		} else {
			if len(version) > 60 {
				version = version[:60] + "..."
			}
			fmt.Printf("✅ Connected: %s\n", version)

			var tables int
			err = db.QueryRow("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public'").Scan(&tables)
			if err != nil {
				fmt.Printf("⚠️  Could not count tables: %v\n", err)
			} else {
				fmt.Printf("📊 %d tables in public schema\n", tables)
			}
		}
	}

	if cfg.GeminiAPIKey != "" {
		fmt.Println("\n--- Gemini ---")
		ctx := context.Background()
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatal("Gemini init failed:", err)
		}
		defer client.Close()

		iter := client.ListModels(ctx)
		count := 0
		for {
			m, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				fmt.Printf("❌ Model listing failed (key may be stale): %v\n", err)
				return
			}
			fmt.Printf("MODEL: %s\n", m.Name)
			count++
		}
		fmt.Printf("✅ Gemini key valid, %d models available\n", count)
	}
}

func printPresence(name string, present bool) {
	if present {
		fmt.Printf("✅ %s\n", name)
	} else {
		fmt.Printf("❌ %s missing\n", name)
	}
}

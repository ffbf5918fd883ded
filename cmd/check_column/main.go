// Checks whether a column exists on a public-schema table and adds it when
// missing. Defaults to the materials.extracted_text column that the ingestion
// rollout needed.
//
// Usage: check_column [table column type]
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("Missing SUPABASE_DB_URL")
	}

	table, column, colType := "materials", "extracted_text", "TEXT"
	if len(os.Args) >= 4 {
		table, column, colType = os.Args[1], os.Args[2], os.Args[3]
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable:", err)
	}

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2
	)`, table, column).Scan(&exists)
	if err != nil {
		log.Fatal("Column check failed:", err)
	}

	if exists {
		fmt.Printf("✅ Column %s.%s already exists, nothing to do\n", table, column)
		return
	}

	fmt.Printf("Column %s.%s is missing. Adding as %s...\n", table, column, colType)
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, column, colType))
	if err != nil {
		log.Fatal("Failed to add column:", err)
	}
	fmt.Printf("✅ Added %s column to %s\n", column, table)
}

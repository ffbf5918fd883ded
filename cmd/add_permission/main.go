// Assigns a permission to a role. Safe to re-run: the row is only inserted
// when it does not exist yet.
//
// Usage: add_permission [role permission]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/supabase-community/supabase-go"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.ServiceRoleKey == "" {
		log.Fatal("Missing Supabase credentials")
	}

	role, permission := "teacher", "materials.upload"
	if len(os.Args) >= 3 {
		role, permission = os.Args[1], os.Args[2]
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.ServiceRoleKey, nil)
	if err != nil {
		log.Fatal("Supabase init failed:", err)
	}

	fmt.Printf("=== Assigning %q to role %q ===\n\n", permission, role)

	var roles []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	_, err = client.From("roles").Select("id,name", "exact", false).Eq("name", role).ExecuteTo(&roles)
	if err != nil {
		log.Fatal("Error fetching role:", err)
	}
	if len(roles) == 0 {
		log.Fatalf("Role %q not found in roles table", role)
	}

	var existing []struct {
		RoleID     string `json:"role_id"`
		Permission string `json:"permission"`
	}
	_, err = client.From("role_permissions").Select("role_id,permission", "exact", false).
		Eq("role_id", roles[0].ID).
		Eq("permission", permission).
		ExecuteTo(&existing)
	if err != nil {
		log.Fatal("Error checking existing permission:", err)
	}

	if len(existing) > 0 {
		fmt.Println("✅ Permission already assigned, nothing to do")
		return
	}

	_, _, err = client.From("role_permissions").Insert(map[string]interface{}{
		"role_id":    roles[0].ID,
		"permission": permission,
	}, false, "", "", "exact").Execute()
	if err != nil {
		log.Fatal("Insert failed:", err)
	}

	fmt.Printf("✅ Permission %q assigned to role %q\n", permission, role)
}

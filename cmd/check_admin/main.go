// Verifies an admin account's role assignments: looks up the profile by
// email, lists every role attached to it with that role's permissions, and
// flags whether the admin role is actually present.
//
// Usage: check_admin [email]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.ServiceRoleKey == "" {
		log.Fatal("Missing Supabase credentials")
	}

	adminEmail := "admin@studyvault.dev"
	if len(os.Args) >= 2 {
		adminEmail = os.Args[1]
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.ServiceRoleKey, nil)
	if err != nil {
		log.Fatal("Supabase init failed:", err)
	}

	fmt.Printf("=== Role Check for %s ===\n\n", adminEmail)

	var profiles []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_, err = client.From("profiles").Select("id,email", "exact", false).Eq("email", adminEmail).ExecuteTo(&profiles)
	if err != nil {
		log.Fatal("Error fetching profile:", err)
	}
	if len(profiles) == 0 {
		log.Fatalf("❌ No profile found for %s", adminEmail)
	}
	fmt.Printf("Profile ID: %s\n\n", profiles[0].ID)

	var userRoles []struct {
		RoleID string `json:"role_id"`
	}
	_, err = client.From("user_roles").Select("role_id", "exact", false).Eq("user_id", profiles[0].ID).ExecuteTo(&userRoles)
	if err != nil {
		log.Fatal("Error fetching user roles:", err)
	}

	if len(userRoles) == 0 {
		fmt.Println("❌ Account has NO roles assigned!")
		return
	}

	roleIDs := make([]string, 0, len(userRoles))
	for _, ur := range userRoles {
		roleIDs = append(roleIDs, ur.RoleID)
	}

	var roles []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	_, err = client.From("roles").Select("id,name", "exact", false).
		In("id", roleIDs).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&roles)
	if err != nil {
		log.Fatal("Error fetching roles:", err)
	}

	hasAdmin := false
	fmt.Printf("Found %d role(s):\n", len(roles))
	for _, role := range roles {
		if role.Name == "admin" {
			hasAdmin = true
		}

		var perms []struct {
			Permission string `json:"permission"`
		}
		_, err = client.From("role_permissions").Select("permission", "exact", false).Eq("role_id", role.ID).ExecuteTo(&perms)
		if err != nil {
			fmt.Printf("- %s (⚠️  could not fetch permissions: %v)\n", role.Name, err)
			continue
		}

		fmt.Printf("- %s (%d permissions)\n", role.Name, len(perms))
		for _, p := range perms {
			fmt.Printf("    %s\n", p.Permission)
		}
	}

	if hasAdmin {
		fmt.Println("\n✅ Account has the admin role")
	} else {
		fmt.Println("\n❌ Account does NOT have the admin role")
	}
}

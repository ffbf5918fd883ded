// Creates a throwaway test user via the Supabase auth API. If the account
// already exists, falls back to a password login to confirm it is still
// usable, then makes sure a matching profiles row is present.
//
// Usage: create_test_user [email password]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/supabase-community/supabase-go"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.AnonKey == "" || cfg.ServiceRoleKey == "" {
		log.Fatal("Missing Supabase credentials")
	}

	email, password := "testuser@studyvault.dev", "testpassword123"
	if len(os.Args) >= 3 {
		email, password = os.Args[1], os.Args[2]
	}

	fmt.Printf("Creating test user %s...\n", email)

	token, userID, err := authRequest(cfg.SupabaseURL+"/auth/v1/signup", cfg.AnonKey, email, password)
	if err != nil {
		fmt.Println("Signup failed (user may already exist). Trying login...")
		token, userID, err = authRequest(cfg.SupabaseURL+"/auth/v1/token?grant_type=password", cfg.AnonKey, email, password)
		if err != nil {
			log.Fatalf("❌ Could not sign up or log in: %v", err)
		}
	}

	fmt.Println("✅ Test user is usable")
	fmt.Printf("   User ID: %s\n", userID)
	fmt.Printf("   Access token: %s...\n", token[:20])

	// Make sure the app-side profile row exists. Auth and profiles can drift
	// when the signup trigger is disabled.
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.ServiceRoleKey, nil)
	if err != nil {
		log.Fatal("Supabase init failed:", err)
	}

	var profiles []struct {
		ID string `json:"id"`
	}
	_, err = client.From("profiles").Select("id", "exact", false).Eq("id", userID).ExecuteTo(&profiles)
	if err != nil {
		log.Fatal("Error checking profiles:", err)
	}

	if len(profiles) > 0 {
		fmt.Println("✅ Profile row already exists")
		return
	}

	fmt.Println("Profile row missing. Inserting...")
	_, _, err = client.From("profiles").Insert(map[string]interface{}{
		"id":    userID,
		"email": email,
	}, false, "", "", "exact").Execute()
	if err != nil {
		log.Fatal("Failed to insert profile:", err)
	}
	fmt.Println("✅ Profile row created")
}

func authRequest(url, apiKey, email, password string) (token, userID string, err error) {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}
	if result.AccessToken == "" {
		return "", "", fmt.Errorf("no access_token in response (is 'Confirm Email' disabled?)")
	}
	return result.AccessToken, result.User.ID, nil
}

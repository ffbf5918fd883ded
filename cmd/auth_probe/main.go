// Probes the auth endpoints: performs a password-grant login and validates
// the returned access token against /auth/v1/user. Useful for checking
// whether auth failures come from credentials or from the endpoint itself.
//
// Usage: auth_probe [email password]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"studyvault-ops/config"
)

func main() {
	cfg := config.Load()
	if cfg.SupabaseURL == "" || cfg.AnonKey == "" {
		log.Fatal("Missing Supabase credentials")
	}

	email, password := "testuser@studyvault.dev", "testpassword123"
	if len(os.Args) >= 3 {
		email, password = os.Args[1], os.Args[2]
	}

	fmt.Println("=== Auth Endpoint Probe ===")
	fmt.Printf("Target: %s\n\n", cfg.SupabaseURL)

	// 1. Password grant
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, _ := http.NewRequest("POST", cfg.SupabaseURL+"/auth/v1/token?grant_type=password", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", cfg.AnonKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("Login request failed:", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	fmt.Printf("Login status: %d\n", resp.StatusCode)
	if resp.StatusCode >= 400 {
		fmt.Printf("❌ Login rejected:\n%s\n", string(body))
		return
	}

	var loginResult struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &loginResult); err != nil || loginResult.AccessToken == "" {
		fmt.Printf("❌ Login returned 200 but no access_token:\n%s\n", string(body))
		return
	}
	fmt.Printf("✅ Got %s token (expires in %ds)\n\n", loginResult.TokenType, loginResult.ExpiresIn)

	// 2. Validate the token against the user endpoint
	req, _ = http.NewRequest("GET", cfg.SupabaseURL+"/auth/v1/user", nil)
	req.Header.Set("apikey", cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+loginResult.AccessToken)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("User request failed:", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	fmt.Printf("User endpoint status: %d\n", resp.StatusCode)
	if resp.StatusCode >= 400 {
		fmt.Printf("❌ Token rejected by /auth/v1/user:\n%s\n", string(body))
		return
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &user)
	fmt.Printf("✅ Token valid for %s (ID: %s)\n", user.Email, user.ID)
	fmt.Println("\nExport for other scripts:")
	fmt.Printf("export TEST_ACCESS_TOKEN=%s\n", loginResult.AccessToken)
}

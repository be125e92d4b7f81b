// Smoke test for a running server: exercises the explain, quiz and
// transcription-less paths end to end against real backends.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("EMPOWER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	client := &http.Client{Timeout: 180 * time.Second}

	log.Println("Checking health...")
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("health check returned %d", resp.StatusCode)
	}

	log.Println("Requesting explanation...")
	explain := post(client, baseURL+"/explain", map[string]any{
		"age":        7,
		"disability": "visual",
		"subject":    "science",
		"topic":      "the water cycle",
	})
	fmt.Printf("explain response:\n%s\n\n", explain)

	log.Println("Requesting quiz...")
	quiz := post(client, baseURL+"/quiz", map[string]any{
		"age":        9,
		"disability": "adhd",
		"subject":    "math",
	})
	fmt.Printf("quiz response:\n%s\n", quiz)

	log.Println("Smoke test passed")
}

func post(client *http.Client, url string, body map[string]any) string {
	jsonBody, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		log.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("POST %s returned %d: %s", url, resp.StatusCode, out.String())
	}
	return out.String()
}

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Isolated test for the live event stream. It logs in against a running
// server, opens the websocket, optionally narrows the event filter, and
// prints every pushed frame until interrupted.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
	Error string `json:"error"`
}

type eventFrame struct {
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type subscribeFrame struct {
	Action string   `json:"action"`
	Types  []string `json:"types"`
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server host:port")
	email := flag.String("email", "", "account email (or PORTAL_EMAIL env var)")
	password := flag.String("password", "", "account password (or PORTAL_PASSWORD env var)")
	types := flag.String("types", "", "comma separated event types to subscribe to (empty = all)")
	flag.Parse()

	if *email == "" {
		*email = os.Getenv("PORTAL_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("PORTAL_PASSWORD")
	}
	if *email == "" || *password == "" {
		fmt.Fprintf(os.Stderr, "ERROR: credentials missing\n")
		fmt.Fprintf(os.Stderr, "Usage: test-event-stream --addr localhost:8080 --email a@b.c --password secret [--types permit.updated,write.failed]\n")
		os.Exit(1)
	}

	fmt.Println("=== Event Stream Test ===")
	fmt.Printf("Server: %s\n\n", *addr)

	// Step 1: log in for a session token
	fmt.Println("[Step 1] Logging in...")
	token, err := login(*addr, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Got session token: %s...\n", token[:10])

	// Step 2: open the websocket
	fmt.Println("\n[Step 2] Connecting to event stream...")
	wsURL := url.URL{Scheme: "ws", Host: *addr, Path: "/ws", RawQuery: "token=" + url.QueryEscape(token)}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: websocket dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Println("✓ Connected")

	// Step 3: narrow the filter if requested
	if *types != "" {
		filter := strings.Split(*types, ",")
		fmt.Printf("\n[Step 3] Subscribing to %v...\n", filter)
		if err := conn.WriteJSON(subscribeFrame{Action: "subscribe", Types: filter}); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: subscribe failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Filter applied")
	}

	fmt.Println("\nWaiting for events (Ctrl+C to stop)...")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var frame eventFrame
			if err := conn.ReadJSON(&frame); err != nil {
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
			payload, _ := json.Marshal(frame.Payload)
			fmt.Printf("[%s] %s %s\n", frame.Timestamp.Format(time.RFC3339), frame.Type, payload)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		fmt.Println("\nClosing connection...")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}

	fmt.Println("✅ Event Stream Test finished")
}

func login(addr, email, password string) (string, error) {
	body, _ := json.Marshal(loginRequest{Email: email, Password: password})
	resp, err := http.Post("http://"+addr+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed loginResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unexpected response: %s", raw)
	}
	if !parsed.Success {
		return "", fmt.Errorf("server rejected login: %s", parsed.Error)
	}
	if parsed.Data.Token == "" {
		return "", fmt.Errorf("no token in response")
	}
	return parsed.Data.Token, nil
}

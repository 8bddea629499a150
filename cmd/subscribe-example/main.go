// Command subscribe-example demonstrates a SecureNotify subscriber.
//
// This example shows how to:
//   - Create a client from environment configuration
//   - Subscribe to a channel with message and error handlers
//   - Observe reconnection through the OnConnected handler
//   - Shut down cleanly on SIGINT/SIGTERM
//
// Usage:
//
//	SECURENOTIFY_URL=https://notify.example.com \
//	SECURENOTIFY_API_KEY=sk_live_... \
//	go run ./cmd/subscribe-example orders
package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/securenotify/securenotify-go/pkg/client"
	"github.com/securenotify/securenotify-go/pkg/event"
	snlog "github.com/securenotify/securenotify-go/pkg/log"
	"github.com/securenotify/securenotify-go/pkg/subscription"
	"github.com/securenotify/securenotify-go/pkg/version"
)

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.Printf("SecureNotify subscriber (%s)", version.BuildInfo())

	channel := "demo"
	if len(os.Args) > 1 {
		channel = os.Args[1]
	}

	cfg := client.Config{
		BaseURL: os.Getenv("SECURENOTIFY_URL"),
		APIKey:  os.Getenv("SECURENOTIFY_API_KEY"),
	}

	c, err := client.New(cfg, client.WithLogger(snlog.NewSlogAdapter(slog.Default())))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer c.Close()

	sub, err := c.Subscribe(channel, subscription.Handlers{
		OnMessage: func(m event.Message) {
			log.Printf("[%s] %s", m.Channel, m.Payload)
		},
		OnConnected: func(e event.Connected) {
			log.Printf("Connected to %q", e.Channel)
		},
		OnHeartbeat: func(event.Heartbeat) {
			log.Printf("Heartbeat")
		},
		OnError: func(e event.Error) {
			log.Printf("Stream error %d (%s): %s", e.Code, e.Code, e.Message)
		},
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	log.Printf("Subscribed to %q (id %s), waiting for messages...", channel, sub.ID())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	if err := c.Unsubscribe(sub); err != nil {
		log.Printf("Unsubscribe: %v", err)
	}
}

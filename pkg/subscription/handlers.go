package subscription

import "github.com/securenotify/securenotify-go/pkg/event"

// Handlers bundles the callbacks a subscription delivers events to.
// OnMessage is required; the others are optional.
//
// All callbacks for one subscription run on a single goroutine in stream
// order. They must not call Unsubscribe on their own subscription.
type Handlers struct {
	// OnMessage receives application messages published to the channel.
	OnMessage func(event.Message)

	// OnConnected fires when the server confirms the subscription,
	// including after each successful reconnection.
	OnConnected func(event.Connected)

	// OnHeartbeat receives server liveness probes on idle channels.
	OnHeartbeat func(event.Heartbeat)

	// OnError receives stream errors: server error events, transport
	// failures, decode failures, and the final give-up notification.
	// The subscription keeps running after OnError unless the error
	// is terminal.
	OnError func(event.Error)
}

// Package wsrelay republishes an eventbus.Bus over websocket connections,
// the supplemental "expose read/event surface to out-of-process
// consumers" piece named in SPEC_FULL.md section 5. It is additive: it
// reads from the same Bus subscriptions any in-process caller would use,
// and does not change core event semantics.
package wsrelay

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/eventbus"
)

// envelope is the wire shape of every relayed message: an event name plus
// its JSON-encoded payload.
type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Relay upgrades incoming HTTP connections to websockets and streams every
// subscribed event to each connected client.
type Relay struct {
	bus      *eventbus.Bus
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New builds a Relay fed by bus. Call Run once to start forwarding events;
// ServeHTTP accepts new client connections.
func New(bus *eventbus.Bus) *Relay {
	return &Relay{
		bus:     bus,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP implements http.Handler, upgrading the connection and
// registering it to receive relayed events until it disconnects.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("wsrelay: upgrade failed: %v", err)
		return
	}
	r.mu.Lock()
	r.clients[conn] = struct{}{}
	r.mu.Unlock()

	// Drain any client->server frames (none expected) so the connection
	// closes promptly on client disconnect, then deregister.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				r.mu.Lock()
				delete(r.clients, conn)
				r.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func (r *Relay) broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(r.clients, conn)
		}
	}
}

// Run forwards bus events to all connected clients until stop is closed.
func (r *Relay) Run(stop <-chan struct{}) {
	tx := r.bus.SubscribeTransaction()
	sync := r.bus.SubscribeSync()
	desync := r.bus.SubscribeDesync()

	for {
		select {
		case t := <-tx:
			r.broadcast("transaction", txPayload(t))
		case s := <-sync:
			r.broadcast("sync", s)
		case d := <-desync:
			r.broadcast("desync", d)
		case <-stop:
			return
		}
	}
}

func txPayload(t blockdata.Transaction) map[string]interface{} {
	transfers := make(map[string]int64, len(t.Transfers))
	for k, v := range t.Transfers {
		transfers[hexKey(k)] = v
	}
	return map[string]interface{}{
		"hash":        hexKey(t.Hash),
		"fee":         t.Fee,
		"blockHeight": t.BlockHeight,
		"timestamp":   t.Timestamp,
		"paymentId":   t.PaymentID,
		"unlockTime":  t.UnlockTime,
		"isCoinbase":  t.IsCoinbase,
		"transfers":   transfers,
	}
}

func hexKey(h blockdata.Hash32) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0xf]
	}
	return string(out)
}

package websocket

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	domainNote "github.com/estudia-app/estudia/domains/note"
	"github.com/estudia-app/estudia/infrastructure/valkey"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	valkeylib "github.com/valkey-io/valkey-go"
)

// client tracks which user a connection authenticated as; events are
// fanned out per user.
type client struct {
	userID string
}

// shouldReceive applies the per-user scoping: an event carrying a UserID
// only goes to connections registered under that same user. Connections
// opened without a user_id never see scoped events.
func (cl client) shouldReceive(event Event) bool {
	if event.UserID == "" {
		return true
	}
	return cl.userID == event.UserID
}

type Event struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	UserID   string `json:"user_id,omitempty"`
	Result   any    `json:"result"`
	SenderID string `json:"sender_id,omitempty"`
}

var (
	Clients    = make(map[*websocket.Conn]client)
	Register   = make(chan *websocket.Conn)
	Broadcast  = make(chan Event)
	Unregister = make(chan *websocket.Conn)

	vkClient *valkey.Client
	wsChan   = "estudia:ws_broadcast"
	localID  string
)

// SetValkeyClient enables cross-server event propagation via pub/sub.
func SetValkeyClient(c *valkey.Client, serverID string) {
	vkClient = c
	localID = serverID
}

// Hub implements usecase.NoteEventPublisher on top of the Broadcast channel.
type Hub struct{}

func NewHub() *Hub { return &Hub{} }

func (h *Hub) PublishNoteProcessed(userID string, n *domainNote.ClassNote) {
	Broadcast <- Event{
		Code:    "NOTE_PROCESSED",
		Message: "Note processing finished",
		UserID:  userID,
		Result:  n,
	}
}

func handleRegister(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	Clients[conn] = client{userID: userID}
	logrus.WithField("user_id", userID).Debug("[WS] Connection registered")
}

func handleUnregister(conn *websocket.Conn) {
	delete(Clients, conn)
	logrus.Debug("[WS] Connection unregistered")
}

// broadcastToLocal delivers an event to local connections. Events with a
// UserID only reach that user's connections (and unscoped ones).
func broadcastToLocal(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("[WS] Marshal error: %v", err)
		return
	}

	for conn, cl := range Clients {
		if !cl.shouldReceive(event) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logrus.Errorf("[WS] Write error: %v", err)
			closeConnection(conn)
		}
	}
}

func publishToValkey(event Event) {
	if vkClient == nil {
		return
	}

	event.SenderID = localID

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	ctx := context.Background()
	cmd := vkClient.Inner().B().Publish().Channel(wsChan).Message(string(data)).Build()
	if err := vkClient.Inner().Do(ctx, cmd).Error(); err != nil {
		logrus.Errorf("[WS] Failed to publish to Valkey: %v", err)
	}
}

func startValkeySubscriber() {
	if vkClient == nil {
		return
	}

	logrus.Info("[WS] Starting Valkey Pub/Sub subscriber for distributed events")
	go func() {
		err := vkClient.Inner().Receive(context.Background(), vkClient.Inner().B().Subscribe().Channel(wsChan).Build(), func(msg valkeylib.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err == nil {
				// Avoid loops: ignore messages sent by this same instance
				if event.SenderID == localID {
					return
				}
				broadcastToLocal(event)
			}
		})
		if err != nil {
			logrus.Errorf("[WS] Valkey subscriber failed: %v", err)
		}
	}()
}

func closeConnection(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
	_ = conn.Close()
	delete(Clients, conn)
}

func RunHub() {
	if vkClient != nil {
		startValkeySubscriber()
	}

	for {
		select {
		case conn := <-Register:
			handleRegister(conn)

		case conn := <-Unregister:
			handleUnregister(conn)

		case event := <-Broadcast:
			broadcastToLocal(event)

			if vkClient != nil {
				publishToValkey(event)
			}
		}
	}
}

func RegisterRoutes(app fiber.Router) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			// The user scopes its event stream via query param
			c.Locals("user_id", c.Query("user_id"))
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		defer func() {
			Unregister <- conn
			_ = conn.Close()
		}()

		Register <- conn

		for {
			messageType, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logrus.Println("read error:", err)
				}
				return
			}
			if messageType != websocket.TextMessage {
				logrus.Println("unsupported message type:", messageType)
			}
			// Inbound messages are ignored; the stream is server push only.
		}
	}))
}

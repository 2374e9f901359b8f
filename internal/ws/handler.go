package ws

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"studyvibe/internal/security"
	"studyvibe/internal/service"
)

type wsAuthError struct {
	status int
	msg    string
}

func (e wsAuthError) Error() string {
	return e.msg
}

func normalizeAllowedOrigins(origins []string) map[string]struct{} {
	res := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		o := strings.TrimSpace(strings.ToLower(origin))
		if o != "" {
			res[o] = struct{}{}
		}
	}
	return res
}

func makeCheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := normalizeAllowedOrigins(allowedOrigins)
	if len(allowed) == 0 {
		return func(r *http.Request) bool {
			return false
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(strings.ToLower(r.Header.Get("Origin")))
		if origin == "" {
			return false
		}
		if _, ok := allowed[origin]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		normalized := strings.ToLower(fmt.Sprintf("%s://%s", u.Scheme, u.Host))
		_, ok := allowed[normalized]
		return ok
	}
}

func extractTokenFromWSRequest(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		token := strings.TrimSpace(authHeader[len("Bearer "):])
		if token != "" {
			return token, nil
		}
	}

	protocolHeader := r.Header.Get("Sec-WebSocket-Protocol")
	if protocolHeader != "" {
		parts := strings.Split(protocolHeader, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) >= 2 && strings.EqualFold(parts[0], "bearer") {
			token := parts[1]
			if token != "" {
				return token, nil
			}
		}
	}

	return "", wsAuthError{status: http.StatusUnauthorized, msg: "missing bearer token"}
}

// MakeHandler returns an HTTP handler for the /ws endpoint.
// Authenticates via Bearer token (Authorization header or
// Sec-WebSocket-Protocol), then dispatches client events:
//   - message   -> append to the friend's thread & broadcast
//   - mark_read -> mark the thread read & broadcast messages_read
//   - typing    -> forward a typing indicator to the addressed friend
func MakeHandler(
	hub *Hub,
	tokens *security.TokenService,
	authSvc *service.AuthService,
	chatSvc *service.ChatService,
	allowedOrigins []string,
) http.HandlerFunc {
	checkOrigin := makeCheckOrigin(allowedOrigins)
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
		Subprotocols: []string{
			"bearer",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !checkOrigin(r) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		tokenStr, err := extractTokenFromWSRequest(r)
		if err != nil {
			if authErr, ok := err.(wsAuthError); ok {
				http.Error(w, authErr.msg, authErr.status)
				return
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := authSvc.CurrentSession(ctx, sub)
		if err != nil || user == nil {
			http.Error(w, "no active session", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hub.Register(user.ID, conn)
		defer func() {
			hub.Unregister(user.ID, conn)
			hub.BroadcastAll(map[string]any{
				"type":     "user_offline",
				"user_id":  user.ID,
				"username": user.Username,
			})
		}()
		hub.BroadcastAll(map[string]any{
			"type":     "user_online",
			"user_id":  user.ID,
			"username": user.Username,
		})

		for {
			var payload map[string]any
			if err := conn.ReadJSON(&payload); err != nil {
				break
			}
			msgType, _ := payload["type"].(string)
			switch msgType {

			case "message":
				friendID, _ := payload["friend_id"].(string)
				content, _ := payload["content"].(string)
				kind, _ := payload["message_type"].(string)
				if friendID == "" || content == "" {
					sendError(conn, "message requires friend_id and non-empty content")
					continue
				}
				msg, err := chatSvc.SendMessage(ctx, user.ID, service.SendMessageInput{
					FriendID: friendID,
					Content:  content,
					Type:     kind,
				})
				if err != nil {
					log.Printf("ws: send message: %v", err)
					sendError(conn, "failed to send message")
					continue
				}
				hub.BroadcastToUsers([]string{user.ID, friendID}, map[string]any{
					"type":         "message",
					"friend_id":    friendID,
					"message_id":   msg.ID,
					"content":      msg.Content,
					"message_type": msg.Type,
					"sender_id":    msg.SenderID,
					"timestamp":    msg.Timestamp,
					"is_read":      msg.IsRead,
				})

			case "mark_read":
				friendID, _ := payload["friend_id"].(string)
				if friendID == "" {
					continue
				}
				if err := chatSvc.MarkMessagesAsRead(ctx, friendID); err != nil {
					log.Printf("ws: mark_read: %v", err)
					sendError(conn, "failed to mark messages as read")
					continue
				}
				hub.BroadcastToUsers([]string{user.ID, friendID}, map[string]any{
					"type":      "messages_read",
					"friend_id": friendID,
					"user_id":   user.ID,
				})

			case "typing":
				friendID, _ := payload["friend_id"].(string)
				if friendID == "" {
					continue
				}
				hub.BroadcastToUsers([]string{friendID}, map[string]any{
					"type":      "typing",
					"friend_id": friendID,
					"user_id":   user.ID,
					"username":  user.Username,
				})

			default:
				log.Printf("ws: unknown event type %q from user %s", msgType, user.ID)
			}
		}
	}
}

func sendError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(map[string]any{
		"type":    "error",
		"message": msg,
	})
}

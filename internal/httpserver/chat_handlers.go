package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyvibe/internal/domain"
	"studyvibe/internal/service"
	"studyvibe/internal/ws"
)

type addFriendRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
	IsOnline bool   `json:"is_online"`
	LastSeen string `json:"last_seen"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

type addStoryRequest struct {
	MediaURL string `json:"media_url"`
}

func handleListFriends(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friends, err := chatSvc.ListFriends(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, friends)
	}
}

func handleAddFriend(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addFriendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		friend := &domain.Friend{
			ID:       req.ID,
			Username: req.Username,
			Avatar:   req.Avatar,
			Bio:      req.Bio,
			IsOnline: req.IsOnline,
			LastSeen: req.LastSeen,
		}
		if err := chatSvc.AddFriend(r.Context(), friend); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, friend)
	}
}

func handleRemoveFriend(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friendID := chi.URLParam(r, "friendID")
		if err := chatSvc.RemoveFriend(r.Context(), friendID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListChats(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chats, err := chatSvc.ListChats(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, chats)
	}
}

func handleGetChat(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		friendID := chi.URLParam(r, "friendID")
		chat, err := chatSvc.GetChatWithFriend(r.Context(), friendID)
		if err != nil {
			writeError(w, err)
			return
		}
		if chat == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no chat with this friend"})
			return
		}
		writeJSON(w, http.StatusOK, chat)
	}
}

func handleSendMessage(chatSvc *service.ChatService, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		friendID := chi.URLParam(r, "friendID")
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		msg, err := chatSvc.SendMessage(r.Context(), user.ID, service.SendMessageInput{
			FriendID: friendID,
			Content:  req.Content,
			Type:     req.Type,
		})
		if err != nil {
			writeError(w, err)
			return
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
		writeJSON(w, http.StatusCreated, msg)
	}
}

func handleMarkChatRead(chatSvc *service.ChatService, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		friendID := chi.URLParam(r, "friendID")
		if err := chatSvc.MarkMessagesAsRead(r.Context(), friendID); err != nil {
			writeError(w, err)
			return
		}
		hub.BroadcastToUsers([]string{user.ID, friendID}, map[string]any{
			"type":      "messages_read",
			"friend_id": friendID,
			"user_id":   user.ID,
		})
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}
}

func handleListGroups(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := chatSvc.ListGroups(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func handleCreateGroup(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		var req createGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		group, err := chatSvc.CreateStudyGroup(r.Context(), req.Name, req.MemberIDs, user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, group)
	}
}

func handleJoinGroup(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		groupID := chi.URLParam(r, "groupID")
		group, err := chatSvc.JoinGroup(r.Context(), groupID, user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

func handleLeaveGroup(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		groupID := chi.URLParam(r, "groupID")
		group, err := chatSvc.LeaveGroup(r.Context(), groupID, user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

func handleListStories(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stories, err := chatSvc.ListStories(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stories)
	}
}

func handleAddStory(chatSvc *service.ChatService, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		var req addStoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		story, err := chatSvc.AddStory(r.Context(), req.MediaURL, user.ID, user.Username, user.Avatar)
		if err != nil {
			writeError(w, err)
			return
		}

		hub.BroadcastAll(map[string]any{
			"type":      "story_added",
			"story_id":  story.ID,
			"user_id":   story.UserID,
			"username":  story.Username,
			"media_url": story.MediaURL,
			"timestamp": story.Timestamp,
		})
		writeJSON(w, http.StatusCreated, story)
	}
}

func handleViewStory(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID := chi.URLParam(r, "storyID")
		if err := chatSvc.MarkStoryViewed(r.Context(), storyID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}
}

package events

import (
	"time"

	"papobot/internal/domain"
)

type ChatMessageDTO struct {
	Platform  string `json:"platform"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	IsPrivate bool   `json:"is_private"`
	Timestamp string `json:"timestamp"`
}

func NewChatMessageDTO(msg domain.Message) ChatMessageDTO {
	return ChatMessageDTO{
		Platform:  string(msg.Platform),
		ChannelID: msg.ChannelID,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Text:      msg.Text,
		IsPrivate: msg.IsPrivate,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

type DispatchErrorDTO struct {
	Platform  string `json:"platform"`
	ChannelID string `json:"channel_id"`
	Username  string `json:"username"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

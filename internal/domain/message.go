package domain

type Platform string

const (
	PlatformTwitch   Platform = "twitch"
	PlatformTelegram Platform = "telegram"
)

type Message struct {
	Platform  Platform
	ChannelID string
	UserID    string
	Username  string
	Text      string
	IsPrivate bool

	// Flags que vêm da plataforma (preenchidos no adapter)
	IsPlatformOwner bool
	IsPlatformMod   bool
	IsPlatformVip   bool
}

package domain

import "context"

type OutgoingMessagePort interface {
	SendMessage(ctx context.Context, platform Platform, channelID, text string) error
}

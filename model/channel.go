package model

// ChannelIdentity идентифицирует канал: стабильный id для EventSub и login для IRC.
type ChannelIdentity struct {
	BroadcasterID string
	Login         string
}

// ActorContext описывает пользователя, от имени которого выполняется join.
type ActorContext struct {
	UserID      string
	IsModerator bool
}

// IsBroadcaster сообщает, является ли пользователь владельцем канала.
func (a ActorContext) IsBroadcaster(channel ChannelIdentity) bool {
	return a.UserID != "" && a.UserID == channel.BroadcasterID
}

// CosmeticsScope содержит необязательные привязки канала к 7TV.
type CosmeticsScope struct {
	EmoteSetID      *string
	CosmeticsUserID *string
}

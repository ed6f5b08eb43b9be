package policy

import "twitch-chat-client/model"

// Platform — значение platform в условиях 7TV.
const Platform = "TWITCH"

// ChannelCondition ограничивает подписку каналом.
func ChannelCondition(broadcasterID string) model.Condition {
	return model.Condition{"broadcaster_user_id": broadcasterID}
}

// ChannelUserCondition ограничивает подписку каналом и пользователем.
func ChannelUserCondition(broadcasterID, userID string) model.Condition {
	return model.Condition{
		"broadcaster_user_id": broadcasterID,
		"user_id":             userID,
	}
}

// ModeratorCondition ограничивает подписку каналом от имени модератора.
func ModeratorCondition(broadcasterID, moderatorID string) model.Condition {
	return model.Condition{
		"broadcaster_user_id": broadcasterID,
		"moderator_user_id":   moderatorID,
	}
}

// CosmeticsChannelCondition строит условие 7TV для косметики канала.
func CosmeticsChannelCondition(broadcasterID string) model.Condition {
	return model.Condition{
		"ctx":      "channel",
		"platform": Platform,
		"id":       broadcasterID,
	}
}

// ObjectCondition строит условие 7TV для конкретного объекта.
func ObjectCondition(objectID string) model.Condition {
	return model.Condition{"object_id": objectID}
}

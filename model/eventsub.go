package model

import (
	"sort"
	"strings"
)

// EventType задаёт тип подписки EventSub.
type EventType string

const (
	ChannelChatUserMessageHold   EventType = "channel.chat.user_message_hold"
	ChannelChatUserMessageUpdate EventType = "channel.chat.user_message_update"
	ChannelSubscriptionEnd       EventType = "channel.subscription.end"
	ChannelUpdate                EventType = "channel.update"
	StreamOffline                EventType = "stream.offline"
	StreamOnline                 EventType = "stream.online"

	AutomodMessageHold           EventType = "automod.message.hold"
	AutomodMessageUpdate         EventType = "automod.message.update"
	ChannelModerate              EventType = "channel.moderate"
	ChannelSuspiciousUserMessage EventType = "channel.suspicious_user.message"
	ChannelSuspiciousUserUpdate  EventType = "channel.suspicious_user.update"
	ChannelUnbanRequestCreate    EventType = "channel.unban_request.create"
	ChannelUnbanRequestResolve   EventType = "channel.unban_request.resolve"
	ChannelWarningAcknowledge    EventType = "channel.warning.acknowledge"

	ChannelPointsAutomaticRewardRedemptionAdd EventType = "channel.channel_points_automatic_reward_redemption.add"
	ChannelPointsCustomRewardRedemptionAdd    EventType = "channel.channel_points_custom_reward_redemption.add"
	ChannelPollBegin                          EventType = "channel.poll.begin"
	ChannelPollProgress                       EventType = "channel.poll.progress"
	ChannelPollEnd                            EventType = "channel.poll.end"
	ChannelPredictionBegin                    EventType = "channel.prediction.begin"
	ChannelPredictionProgress                 EventType = "channel.prediction.progress"
	ChannelPredictionLock                     EventType = "channel.prediction.lock"
	ChannelPredictionEnd                      EventType = "channel.prediction.end"
)

// Version возвращает версию подписки, которую ожидает Helix для типа события.
func (t EventType) Version() string {
	switch t {
	case ChannelUpdate, AutomodMessageHold, AutomodMessageUpdate, ChannelModerate,
		ChannelPointsAutomaticRewardRedemptionAdd:
		return "2"
	default:
		return "1"
	}
}

// Condition сужает подписку до канала или пользователя; набор ключей зависит от типа события.
type Condition map[string]string

// Key возвращает каноническое представление условия для сравнения.
func (c Condition) Key() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(c[k])
	}
	return b.String()
}

// Clone возвращает независимую копию условия.
func (c Condition) Clone() Condition {
	out := make(Condition, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// EventSubscriptionEntry — пара (тип события, условие), отправляемая в EventSub.
type EventSubscriptionEntry struct {
	Type      EventType `json:"type"`
	Condition Condition `json:"condition"`
}

// Key однозначно идентифицирует запись: записи равны, если равны оба поля.
func (e EventSubscriptionEntry) Key() string {
	return string(e.Type) + "?" + e.Condition.Key()
}

// Equal сравнивает записи по типу и условию.
func (e EventSubscriptionEntry) Equal(other EventSubscriptionEntry) bool {
	return e.Key() == other.Key()
}

// CosmeticsSubscription описывает топик 7TV и его условие.
type CosmeticsSubscription struct {
	Topic     string
	Condition Condition
}

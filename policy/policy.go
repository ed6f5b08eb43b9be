// Package policy вычисляет набор подписок, который требуется для канала.
package policy

import (
	"github.com/samber/lo"

	"twitch-chat-client/model"
)

// Топики 7TV.
const (
	TopicCosmeticCreate    = "cosmetic.create"
	TopicEntitlementCreate = "entitlement.create"
	TopicEmoteSetAll       = "emote_set.*"
	TopicUserUpdate        = "user.update"
)

// BaseEvents подписываются для любого зрителя.
var BaseEvents = []model.EventType{
	model.ChannelChatUserMessageHold,
	model.ChannelChatUserMessageUpdate,
	model.ChannelSubscriptionEnd,
	model.ChannelUpdate,
	model.StreamOffline,
	model.StreamOnline,
}

// ModeratorEvents подписываются, если пользователь модерирует канал.
var ModeratorEvents = []model.EventType{
	model.AutomodMessageHold,
	model.AutomodMessageUpdate,
	model.ChannelModerate,
	model.ChannelSuspiciousUserMessage,
	model.ChannelSuspiciousUserUpdate,
	model.ChannelUnbanRequestCreate,
	model.ChannelUnbanRequestResolve,
	model.ChannelWarningAcknowledge,
}

// BroadcasterEvents подписываются только на собственном канале.
var BroadcasterEvents = []model.EventType{
	model.ChannelPointsAutomaticRewardRedemptionAdd,
	model.ChannelPointsCustomRewardRedemptionAdd,
	model.ChannelPollBegin,
	model.ChannelPollProgress,
	model.ChannelPollEnd,
	model.ChannelPredictionBegin,
	model.ChannelPredictionProgress,
	model.ChannelPredictionLock,
	model.ChannelPredictionEnd,
}

// Compute возвращает подписки EventSub для канала с учётом прав пользователя.
// Уровни независимы: модератор и владелец канала получают оба набора.
func Compute(channel model.ChannelIdentity, actor model.ActorContext) []model.EventSubscriptionEntry {
	userDirected := map[model.EventType]bool{
		model.ChannelChatUserMessageHold:   true,
		model.ChannelChatUserMessageUpdate: true,
	}

	entries := lo.Map(BaseEvents, func(t model.EventType, _ int) model.EventSubscriptionEntry {
		if userDirected[t] {
			return entry(t, ChannelUserCondition(channel.BroadcasterID, actor.UserID))
		}
		return entry(t, ChannelCondition(channel.BroadcasterID))
	})

	if actor.IsModerator {
		entries = append(entries, lo.Map(ModeratorEvents, func(t model.EventType, _ int) model.EventSubscriptionEntry {
			return entry(t, ModeratorCondition(channel.BroadcasterID, actor.UserID))
		})...)
	}

	if actor.IsBroadcaster(channel) {
		entries = append(entries, lo.Map(BroadcasterEvents, func(t model.EventType, _ int) model.EventSubscriptionEntry {
			return entry(t, ChannelCondition(channel.BroadcasterID))
		})...)
	}

	return entries
}

// ComputeCosmetics возвращает топики 7TV для канала.
func ComputeCosmetics(channel model.ChannelIdentity, scope model.CosmeticsScope) []model.CosmeticsSubscription {
	subs := []model.CosmeticsSubscription{
		{Topic: TopicCosmeticCreate, Condition: CosmeticsChannelCondition(channel.BroadcasterID)},
		{Topic: TopicEntitlementCreate, Condition: CosmeticsChannelCondition(channel.BroadcasterID)},
	}

	if setID := lo.FromPtr(scope.EmoteSetID); setID != "" {
		subs = append(subs, model.CosmeticsSubscription{Topic: TopicEmoteSetAll, Condition: ObjectCondition(setID)})
	}
	if userID := lo.FromPtr(scope.CosmeticsUserID); userID != "" {
		subs = append(subs, model.CosmeticsSubscription{Topic: TopicUserUpdate, Condition: ObjectCondition(userID)})
	}

	return subs
}

func entry(t model.EventType, cond model.Condition) model.EventSubscriptionEntry {
	return model.EventSubscriptionEntry{Type: t, Condition: cond}
}

package policy

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"twitch-chat-client/model"
)

var foo = model.ChannelIdentity{BroadcasterID: "123", Login: "foo"}

func TestComputeTierCombinations(t *testing.T) {
	cases := []struct {
		name  string
		actor model.ActorContext
		want  int
	}{
		{name: "viewer", actor: model.ActorContext{UserID: "999"}, want: 6},
		{name: "moderator", actor: model.ActorContext{UserID: "999", IsModerator: true}, want: 14},
		{name: "broadcaster", actor: model.ActorContext{UserID: "123"}, want: 15},
		{name: "moderator broadcaster", actor: model.ActorContext{UserID: "123", IsModerator: true}, want: 23},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			entries := Compute(foo, tc.actor)

			req.Len(entries, tc.want)

			keys := lo.Map(entries, func(e model.EventSubscriptionEntry, _ int) string { return e.Key() })
			req.Len(lo.Uniq(keys), len(keys), "duplicate entries")

			types := lo.Map(entries, func(e model.EventSubscriptionEntry, _ int) model.EventType { return e.Type })
			req.Subset(types, BaseEvents)
			req.Equal(tc.actor.IsModerator, lo.Every(types, ModeratorEvents))
			req.Equal(tc.actor.IsBroadcaster(foo), lo.Every(types, BroadcasterEvents))
		})
	}
}

func TestComputeTierSizes(t *testing.T) {
	req := require.New(t)
	req.Len(BaseEvents, 6)
	req.Len(ModeratorEvents, 8)
	req.Len(BroadcasterEvents, 9)
}

func TestComputeConditions(t *testing.T) {
	req := require.New(t)
	entries := Compute(foo, model.ActorContext{UserID: "123", IsModerator: true})
	byType := lo.KeyBy(entries, func(e model.EventSubscriptionEntry) model.EventType { return e.Type })

	req.Equal(model.Condition{"broadcaster_user_id": "123", "user_id": "123"}, byType[model.ChannelChatUserMessageHold].Condition)
	req.Equal(model.Condition{"broadcaster_user_id": "123"}, byType[model.StreamOnline].Condition)
	req.Equal(model.Condition{"broadcaster_user_id": "123", "moderator_user_id": "123"}, byType[model.ChannelModerate].Condition)
	req.Equal(model.Condition{"broadcaster_user_id": "123"}, byType[model.ChannelPollBegin].Condition)
}

func TestComputeModeratorUsesActorID(t *testing.T) {
	req := require.New(t)
	entries := Compute(foo, model.ActorContext{UserID: "42", IsModerator: true})

	for _, e := range entries {
		if lo.Contains(ModeratorEvents, e.Type) {
			req.Equal("42", e.Condition["moderator_user_id"])
			req.Equal("123", e.Condition["broadcaster_user_id"])
		}
	}
}

func TestComputeCosmetics(t *testing.T) {
	t.Run("emote set only", func(t *testing.T) {
		req := require.New(t)
		subs := ComputeCosmetics(foo, model.CosmeticsScope{EmoteSetID: lo.ToPtr("ab12")})

		req.Equal([]string{TopicCosmeticCreate, TopicEntitlementCreate, TopicEmoteSetAll},
			lo.Map(subs, func(s model.CosmeticsSubscription, _ int) string { return s.Topic }))
		req.Equal(model.Condition{"ctx": "channel", "platform": "TWITCH", "id": "123"}, subs[0].Condition)
		req.Equal(model.Condition{"object_id": "ab12"}, subs[2].Condition)
	})

	t.Run("no scope", func(t *testing.T) {
		req := require.New(t)
		req.Len(ComputeCosmetics(foo, model.CosmeticsScope{}), 2)
	})

	t.Run("empty ids are absent", func(t *testing.T) {
		req := require.New(t)
		req.Len(ComputeCosmetics(foo, model.CosmeticsScope{EmoteSetID: lo.ToPtr(""), CosmeticsUserID: lo.ToPtr("")}), 2)
	})

	t.Run("full scope", func(t *testing.T) {
		req := require.New(t)
		subs := ComputeCosmetics(foo, model.CosmeticsScope{EmoteSetID: lo.ToPtr("ab12"), CosmeticsUserID: lo.ToPtr("stv")})
		req.Len(subs, 4)
		req.Equal(TopicUserUpdate, subs[3].Topic)
		req.Equal(model.Condition{"object_id": "stv"}, subs[3].Condition)
	})
}

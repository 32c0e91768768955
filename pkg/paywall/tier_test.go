package paywall_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/creatorkit/pkg/paywall"
)

func TestTierOrder(t *testing.T) {
	t.Parallel()

	t.Run("free below premium below pro", func(t *testing.T) {
		t.Parallel()
		assert.Less(t, paywall.TierFree.Level(), paywall.TierPremium.Level())
		assert.Less(t, paywall.TierPremium.Level(), paywall.TierPro.Level())
	})

	t.Run("compare is a total order", func(t *testing.T) {
		t.Parallel()
		for _, a := range paywall.Tiers() {
			for _, b := range paywall.Tiers() {
				c := paywall.Compare(a, b)
				assert.Equal(t, -paywall.Compare(b, a), c, "%s vs %s", a, b)
				if a == b {
					assert.Zero(t, c)
				} else {
					assert.NotZero(t, c)
				}
			}
		}
	})

	t.Run("higher tiers include lower ones", func(t *testing.T) {
		t.Parallel()
		assert.True(t, paywall.TierPro.Includes(paywall.TierPremium))
		assert.True(t, paywall.TierPro.Includes(paywall.TierFree))
		assert.True(t, paywall.TierPremium.Includes(paywall.TierPremium))
		assert.False(t, paywall.TierPremium.Includes(paywall.TierPro))
		assert.False(t, paywall.TierFree.Includes(paywall.TierPremium))
	})

	t.Run("only non-free tiers are paid", func(t *testing.T) {
		t.Parallel()
		assert.False(t, paywall.TierFree.IsPaid())
		assert.True(t, paywall.TierPremium.IsPaid())
		assert.True(t, paywall.TierPro.IsPaid())
		assert.False(t, paywall.Tier("gold").IsPaid())
	})

	t.Run("level of unknown tier panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { _ = paywall.Tier("gold").Level() })
	})
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want paywall.Tier
	}{
		{"free", paywall.TierFree},
		{"Premium", paywall.TierPremium},
		{"  PRO ", paywall.TierPro},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := paywall.ParseTier(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := paywall.ParseTier("enterprise")
		require.ErrorIs(t, err, paywall.ErrInvalidTier)
		assert.Panics(t, func() { paywall.MustParseTier("") })
	})
}

func TestFeaturesFor(t *testing.T) {
	t.Parallel()

	free := paywall.FeaturesFor(paywall.TierFree)
	premium := paywall.FeaturesFor(paywall.TierPremium)
	pro := paywall.FeaturesFor(paywall.TierPro)

	assert.ElementsMatch(t, []paywall.Feature{paywall.FeatureBasicContent, paywall.FeaturePublicPosts}, free)
	assert.Len(t, premium, 5)
	assert.Len(t, pro, 8)

	for _, f := range free {
		assert.Contains(t, premium, f)
	}
	for _, f := range premium {
		assert.Contains(t, pro, f)
	}
	assert.Contains(t, premium, paywall.FeatureEarlyAccess)
	assert.NotContains(t, premium, paywall.FeatureDirectMessaging)
	assert.Contains(t, pro, paywall.FeaturePrioritySupport)
}

func TestSubscription_Validate(t *testing.T) {
	t.Parallel()

	t.Run("default is valid", func(t *testing.T) {
		t.Parallel()
		sub := paywall.DefaultSubscription()
		require.NoError(t, sub.Validate())
		assert.Equal(t, paywall.TierFree, sub.Tier)
		assert.True(t, sub.IsActive)
		assert.Nil(t, sub.ExpiresAt)
	})

	t.Run("features must match tier", func(t *testing.T) {
		t.Parallel()
		sub := paywall.Subscription{
			Tier:     paywall.TierPremium,
			IsActive: true,
			Features: paywall.FeaturesFor(paywall.TierFree),
		}
		assert.ErrorIs(t, sub.Validate(), paywall.ErrInvalidSubscription)
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()
		sub := paywall.Subscription{Tier: "gold", IsActive: true}
		err := sub.Validate()
		assert.ErrorIs(t, err, paywall.ErrInvalidSubscription)
		assert.ErrorIs(t, err, paywall.ErrInvalidTier)
	})

	t.Run("clone does not share features", func(t *testing.T) {
		t.Parallel()
		sub := paywall.DefaultSubscription()
		c := sub.Clone()
		c.Features[0] = "changed"
		assert.Equal(t, paywall.FeatureBasicContent, sub.Features[0])
	})
}

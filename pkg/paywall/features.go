package paywall

import "slices"

// Feature is an entitlement flag granted as part of a tier's fixed feature set.
type Feature string

const (
	FeatureBasicContent    Feature = "basic_content"
	FeaturePublicPosts     Feature = "public_posts"
	FeaturePremiumContent  Feature = "premium_content"
	FeatureExclusivePosts  Feature = "exclusive_posts"
	FeatureEarlyAccess     Feature = "early_access"
	FeatureProContent      Feature = "pro_content"
	FeatureDirectMessaging Feature = "direct_messaging"
	FeaturePrioritySupport Feature = "priority_support"
)

// tierFeatures holds the features each tier adds on top of the tier below it.
var tierFeatures = map[Tier][]Feature{
	TierFree:    {FeatureBasicContent, FeaturePublicPosts},
	TierPremium: {FeaturePremiumContent, FeatureExclusivePosts, FeatureEarlyAccess},
	TierPro:     {FeatureProContent, FeatureDirectMessaging, FeaturePrioritySupport},
}

// FeaturesFor returns the full feature set for tier, including everything
// granted by lower tiers. The result is a fresh slice the caller may modify.
func FeaturesFor(tier Tier) []Feature {
	lvl := tier.Level()
	var out []Feature
	for _, t := range Tiers() {
		if t.Level() > lvl {
			break
		}
		out = append(out, tierFeatures[t]...)
	}
	return out
}

// sameFeatures reports whether got holds exactly the feature set of tier, in any order.
func sameFeatures(tier Tier, got []Feature) bool {
	want := FeaturesFor(tier)
	if len(want) != len(got) {
		return false
	}
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	slices.Sort(want)
	return slices.Equal(want, sorted)
}

// Package access implements the permission-grant editing model: a
// snapshot of a user's grant collections, toggle intents recorded
// against it, and a minimal change set derived by diffing the two.
package access

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

// kindOrder fixes the display and apply order of the grant collections.
var kindOrder = []platform.GrantKind{
	platform.GrantBrand,
	platform.GrantMarketplace,
	platform.GrantShipping,
}

// ParseKind maps a user-facing kind name to its GrantKind.
func ParseKind(s string) (platform.GrantKind, error) {
	switch s {
	case "brand", "brands":
		return platform.GrantBrand, nil
	case "marketplace", "marketplaces":
		return platform.GrantMarketplace, nil
	case "shipping", "shippingPlatform", "shippingPlatforms":
		return platform.GrantShipping, nil
	default:
		return "", errors.NewGrantUnknownKindError(s)
	}
}

// KindLabel returns the singular user-facing name of a grant kind.
func KindLabel(kind platform.GrantKind) string {
	switch kind {
	case platform.GrantBrand:
		return "brand"
	case platform.GrantMarketplace:
		return "marketplace"
	case platform.GrantShipping:
		return "shipping"
	default:
		return string(kind)
	}
}

// Grant is one entry of a user's grant collections, annotated with its
// kind so the three collections can be handled uniformly.
type Grant struct {
	Kind      platform.GrantKind
	EntityID  string
	Active    bool
	GrantedAt time.Time
}

// Grants flattens a user's three grant collections into a single
// deterministic list, ordered by kind then entity ID.
func Grants(user *platform.User) []Grant {
	if user == nil {
		return nil
	}

	collections := map[platform.GrantKind][]platform.GrantRecord{
		platform.GrantBrand:       user.BrandGrants,
		platform.GrantMarketplace: user.MarketplaceGrants,
		platform.GrantShipping:    user.ShippingGrants,
	}

	var grants []Grant
	for _, kind := range kindOrder {
		records := collections[kind]
		sorted := make([]platform.GrantRecord, len(records))
		copy(sorted, records)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].EntityID < sorted[j].EntityID
		})
		for _, rec := range sorted {
			grants = append(grants, Grant{
				Kind:      kind,
				EntityID:  rec.EntityID,
				Active:    rec.Active,
				GrantedAt: rec.GrantedAt,
			})
		}
	}

	return grants
}

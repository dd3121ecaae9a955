package tier

import (
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
)

// IsPro reports whether the subscription grants PRO behavior at the given
// instant. The stored tier field alone is not authoritative: an expired
// PRO subscription behaves as FREE. Callers must re-evaluate on every
// request, the result depends on the clock.
func IsPro(sub *entity.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}
	if sub.Tier != entity.TierPro {
		return false
	}
	return sub.ProExpiresAt == nil || sub.ProExpiresAt.After(now)
}

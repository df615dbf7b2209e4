package port

import "cybot/internal/core/domain"

type SubscriptionStore interface {
	// Load reads the full subscription table. A missing backing file is not
	// an error and yields an empty table.
	Load() (map[string]domain.SubscriptionRecord, error)
	// Save rewrites the full subscription table as one snapshot.
	Save(records map[string]domain.SubscriptionRecord) error
}

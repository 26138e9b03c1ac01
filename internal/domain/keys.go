package domain

// KeyPrefix namespaces every key the service writes to a shared store.
const KeyPrefix = "peoplefinder:"

// Cache key namespaces.
const (
	// ModelQueryKeyPrefix prefixes raw model responses, followed by the raw query text.
	ModelQueryKeyPrefix = "aiQuery:"
	// DistinctLocationsKey holds the JSON-encoded location universe.
	DistinctLocationsKey = "distinct:locations"
)

package cluster

import "errors"

var (
	// ErrDestroyed indicates an operation on a cluster after Destroy.
	ErrDestroyed = errors.New("cluster: already destroyed")

	// ErrNoClusters indicates a group built from a preset with no clusters.
	ErrNoClusters = errors.New("cluster: preset has no clusters")
)

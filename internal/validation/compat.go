package validation

import (
	"context"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
)

// ClusterVersionCheck compares the compatibility version of each mapped
// cluster pair. It reports nothing yet.
type ClusterVersionCheck struct{}

func (ClusterVersionCheck) Check(ctx context.Context, conn inventory.Connection, doc *mapping.Document) ([]Violation, error) {
	// TODO: report pairs whose versions differ once Cluster carries the compatibility version.
	return nil, nil
}

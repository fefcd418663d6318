package inventory

import (
	"context"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
)

// Cluster is a cluster visible on a connected site.
type Cluster struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DataCenterID   string `json:"dataCenterId"`
	DataCenterName string `json:"dataCenterName,omitempty"`
}

// Client opens connections to a site's management API.
//
//go:generate moq -fmt=goimports -out zz_generated_client.go . Client Connection
type Client interface {
	// Connect authenticates against the site. Failures are returned as *RemoteConnectionError.
	Connect(ctx context.Context, site mapping.SiteDescriptor) (Connection, error)
}

// Connection is an open session on a site. It must be closed by the caller.
type Connection interface {
	// ListClusters returns the clusters of every data center of the site.
	ListClusters(ctx context.Context) ([]Cluster, error)
	Close(ctx context.Context) error
}

// ClusterNames returns the names of the given clusters.
func ClusterNames(clusters []Cluster) []string {
	names := make([]string, 0, len(clusters))
	for _, c := range clusters {
		names = append(names, c.Name)
	}
	return names
}

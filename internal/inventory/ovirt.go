package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/kubev2v/dr-mapping-validator/pkg/runid"
	ovirtsdk4 "github.com/ovirt/go-ovirt"
)

// OVirtClient connects to an oVirt engine through its REST API, e.g.
// https://engine.example.com/ovirt-engine/api.
type OVirtClient struct {
	timeout time.Duration
}

func NewOVirtClient(timeout time.Duration) *OVirtClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OVirtClient{timeout: timeout}
}

// Connect prepares an authenticated session. The engine issues the SSO token
// on the first call, so bad credentials surface from ListClusters.
func (c *OVirtClient) Connect(ctx context.Context, site mapping.SiteDescriptor) (Connection, error) {
	if site.URL == nil || site.Username == nil || site.Password == nil || site.CAFile == nil {
		return nil, NewRemoteConnectionError(deref(site.URL), errors.New("incomplete site descriptor"))
	}
	rawURL := *site.URL
	if err := ctx.Err(); err != nil {
		return nil, NewRemoteConnectionError(rawURL, err)
	}

	conn, err := ovirtsdk4.NewConnectionBuilder().
		URL(rawURL).
		Username(*site.Username).
		Password(*site.Password).
		CAFile(*site.CAFile).
		Insecure(false).
		Timeout(c.timeout).
		Build()
	if err != nil {
		return nil, NewRemoteConnectionError(rawURL, err)
	}

	runid.Logger(ctx, "inventory").Debugw("opened engine connection", "url", rawURL, "username", *site.Username)
	return &ovirtConnection{conn: conn, url: rawURL}, nil
}

type ovirtConnection struct {
	conn *ovirtsdk4.Connection
	url  string
}

// ListClusters lists the data centers and then the clusters attached to each one.
func (c *ovirtConnection) ListClusters(ctx context.Context) ([]Cluster, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRemoteConnectionError(c.url, err)
	}

	dcsService := c.conn.SystemService().DataCentersService()
	dcsResp, err := dcsService.List().Send()
	if err != nil {
		return nil, NewRemoteConnectionError(c.url, fmt.Errorf("listing data centers: %w", err))
	}
	dcs, ok := dcsResp.DataCenters()
	if !ok {
		return []Cluster{}, nil
	}

	clusters := []Cluster{}
	for _, dc := range dcs.Slice() {
		if err := ctx.Err(); err != nil {
			return nil, NewRemoteConnectionError(c.url, err)
		}
		dcID, _ := dc.Id()
		dcName, _ := dc.Name()

		resp, err := dcsService.DataCenterService(dcID).ClustersService().List().Send()
		if err != nil {
			return nil, NewRemoteConnectionError(c.url, fmt.Errorf("listing clusters of data center %s: %w", dcName, err))
		}
		attached, ok := resp.Clusters()
		if !ok {
			continue
		}
		for _, cluster := range attached.Slice() {
			id, _ := cluster.Id()
			name, _ := cluster.Name()
			clusters = append(clusters, Cluster{
				ID:             id,
				Name:           name,
				DataCenterID:   dcID,
				DataCenterName: dcName,
			})
		}
	}

	runid.Logger(ctx, "inventory").Debugw("listed clusters", "url", c.url, "datacenters", len(dcs.Slice()), "clusters", len(clusters))
	return clusters, nil
}

// Close revokes the SSO token. The call is bounded by the connection timeout.
func (c *ovirtConnection) Close(ctx context.Context) error {
	if err := c.conn.Close(); err != nil {
		return NewRemoteConnectionError(c.url, err)
	}
	return nil
}

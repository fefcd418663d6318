package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/kubev2v/dr-mapping-validator/pkg/runid"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/soap"
)

const DefaultTimeout = 30 * time.Second

// VSphereClient connects to a vCenter through its SOAP API.
type VSphereClient struct {
	timeout time.Duration
}

func NewVSphereClient(timeout time.Duration) *VSphereClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &VSphereClient{timeout: timeout}
}

func (c *VSphereClient) Connect(ctx context.Context, site mapping.SiteDescriptor) (Connection, error) {
	if site.URL == nil || site.Username == nil || site.Password == nil || site.CAFile == nil {
		return nil, NewRemoteConnectionError(deref(site.URL), errors.New("incomplete site descriptor"))
	}
	rawURL := *site.URL

	u, err := parseUrl(rawURL, *site.Username, *site.Password)
	if err != nil {
		return nil, NewRemoteConnectionError(rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	soapClient := soap.NewClient(u, false)
	if err := soapClient.SetRootCAs(*site.CAFile); err != nil {
		return nil, NewRemoteConnectionError(rawURL, fmt.Errorf("failed to load CA file %s: %w", *site.CAFile, err))
	}

	vimClient, err := vim25.NewClient(ctx, soapClient)
	if err != nil {
		soapClient.CloseIdleConnections()
		return nil, c.connectionError(ctx, rawURL, err)
	}
	client := &govmomi.Client{
		SessionManager: session.NewManager(vimClient),
		Client:         vimClient,
	}

	runid.Logger(ctx, "inventory").Debugw("logging into site", "url", rawURL, "username", *site.Username)
	if err := client.Login(ctx, u.User); err != nil {
		client.CloseIdleConnections()
		return nil, c.connectionError(ctx, rawURL, err)
	}

	return &vsphereConnection{client: client, url: rawURL, timeout: c.timeout}, nil
}

func (c *VSphereClient) connectionError(ctx context.Context, rawURL string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w: %w", c.timeout, context.DeadlineExceeded, err)
	}
	return NewRemoteConnectionError(rawURL, err)
}

type vsphereConnection struct {
	client  *govmomi.Client
	url     string
	timeout time.Duration
}

// ListClusters walks the data centers and collects the clusters of each one.
func (c *vsphereConnection) ListClusters(ctx context.Context) ([]Cluster, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	finder := find.NewFinder(c.client.Client, false)
	dcs, err := finder.DatacenterList(ctx, "*")
	if err != nil {
		if isNotFound(err) {
			return []Cluster{}, nil
		}
		return nil, c.listError(ctx, err)
	}

	clusters := []Cluster{}
	for _, dc := range dcs {
		finder.SetDatacenter(dc)
		attached, err := finder.ClusterComputeResourceList(ctx, "*")
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, c.listError(ctx, err)
		}
		for _, cluster := range attached {
			clusters = append(clusters, Cluster{
				ID:             cluster.Reference().Value,
				Name:           cluster.Name(),
				DataCenterID:   dc.Reference().Value,
				DataCenterName: dc.Name(),
			})
		}
	}

	runid.Logger(ctx, "inventory").Debugw("listed clusters", "url", c.url, "datacenters", len(dcs), "clusters", len(clusters))
	return clusters, nil
}

func (c *vsphereConnection) listError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w: %w", c.timeout, context.DeadlineExceeded, err)
	}
	return NewRemoteConnectionError(c.url, err)
}

func (c *vsphereConnection) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer c.client.CloseIdleConnections()

	if err := c.client.Logout(ctx); err != nil {
		return c.listError(ctx, err)
	}
	return nil
}

func parseUrl(rawURL, username, password string) (*url.URL, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in url %q", rawURL)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/sdk"
	}
	u.User = url.UserPassword(username, password)
	return u, nil
}

func isNotFound(err error) bool {
	var nf *find.NotFoundError
	return errors.As(err, &nf)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

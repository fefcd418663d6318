package inventory

import (
	"context"
	"errors"
	"sync"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
)

// MemoryClient serves a fixed inventory per site URL. It records the
// connections it hands out so that callers can check when a site was contacted.
type MemoryClient struct {
	mu       sync.Mutex
	sites    map[string][]Cluster
	connects []mapping.SiteDescriptor
	closes   int
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{sites: map[string][]Cluster{}}
}

// WithSite registers the clusters served for the site at url.
func (m *MemoryClient) WithSite(url string, clusters ...Cluster) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[url] = append([]Cluster{}, clusters...)
	return m
}

func (m *MemoryClient) Connect(ctx context.Context, site mapping.SiteDescriptor) (Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connects = append(m.connects, site)
	if site.URL == nil {
		return nil, NewRemoteConnectionError("", errors.New("missing url"))
	}
	clusters, ok := m.sites[*site.URL]
	if !ok {
		return nil, NewRemoteConnectionError(*site.URL, errors.New("no such host"))
	}
	return &memoryConnection{client: m, clusters: clusters}, nil
}

// ConnectCount is the number of Connect calls so far.
func (m *MemoryClient) ConnectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.connects)
}

// Connects returns the descriptors passed to Connect, in call order.
func (m *MemoryClient) Connects() []mapping.SiteDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mapping.SiteDescriptor{}, m.connects...)
}

// CloseCount is the number of connections closed so far.
func (m *MemoryClient) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

type memoryConnection struct {
	client   *MemoryClient
	clusters []Cluster
}

func (c *memoryConnection) ListClusters(ctx context.Context) ([]Cluster, error) {
	return append([]Cluster{}, c.clusters...), nil
}

func (c *memoryConnection) Close(ctx context.Context) error {
	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	c.client.closes++
	return nil
}

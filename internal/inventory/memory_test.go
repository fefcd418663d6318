package inventory_test

import (
	"context"
	"errors"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("memory client", func() {
	It("serves the registered inventory and records connections", func() {
		client := inventory.NewMemoryClient().
			WithSite("https://primary.example.com", inventory.Cluster{ID: "c1", Name: "Default", DataCenterID: "dc1"})

		conn, err := client.Connect(context.TODO(), mapping.SiteDescriptor{URL: ptr("https://primary.example.com")})
		Expect(err).To(BeNil())

		clusters, err := conn.ListClusters(context.TODO())
		Expect(err).To(BeNil())
		Expect(inventory.ClusterNames(clusters)).To(Equal([]string{"Default"}))

		Expect(conn.Close(context.TODO())).To(Succeed())
		Expect(client.ConnectCount()).To(Equal(1))
		Expect(client.CloseCount()).To(Equal(1))
	})

	It("refuses unknown sites", func() {
		client := inventory.NewMemoryClient()

		_, err := client.Connect(context.TODO(), mapping.SiteDescriptor{URL: ptr("https://unknown.example.com")})
		var connErr *inventory.RemoteConnectionError
		Expect(errors.As(err, &connErr)).To(BeTrue())
		Expect(client.ConnectCount()).To(Equal(1))
		Expect(client.CloseCount()).To(Equal(0))
	})
})

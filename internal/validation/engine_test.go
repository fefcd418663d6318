package validation_test

import (
	"context"
	"errors"
	"strings"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/internal/validation"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	primaryURL   = "https://primary.example.com/sdk"
	secondaryURL = "https://secondary.example.com/sdk"
)

func ptr(s string) *string {
	return &s
}

func site(url string) mapping.SiteDescriptor {
	return mapping.SiteDescriptor{
		URL:      ptr(url),
		Username: ptr("administrator@vsphere.local"),
		CAFile:   ptr("/etc/pki/dr/ca.pem"),
	}
}

func newDocument(clusters ...mapping.NameMapping) *mapping.Document {
	names := map[mapping.Category][]mapping.NameMapping{
		mapping.ClusterCategory: clusters,
		mapping.DomainCategory: {
			{PrimaryName: "data_primary", SecondaryName: "data_secondary"},
		},
		mapping.RoleCategory: {
			{PrimaryName: "operator", SecondaryName: "operator"},
		},
	}
	networks := []mapping.NetworkMapping{
		{
			PrimaryProfileName:   "ovirtmgmt",
			PrimaryNetworkName:   "ovirtmgmt",
			PrimaryProfileID:     "0000000a-000a-000a-000a-000000000398",
			SecondaryProfileName: "ovirtmgmt",
			SecondaryNetworkName: "ovirtmgmt",
			SecondaryProfileID:   "0000000a-000a-000a-000a-000000000410",
		},
	}
	return mapping.NewDocument(names, networks, site(primaryURL), site(secondaryURL)).
		WithPasswords("primary-secret", "secondary-secret")
}

func defaultClusters() []mapping.NameMapping {
	return []mapping.NameMapping{
		{PrimaryName: "ClusterA", SecondaryName: "ClusterA_dr"},
		{PrimaryName: "ClusterB", SecondaryName: "ClusterB_dr"},
	}
}

func inventoryClusters(names ...string) []inventory.Cluster {
	clusters := []inventory.Cluster{}
	for i, n := range names {
		clusters = append(clusters, inventory.Cluster{
			ID:             "domain-c" + string(rune('1'+i)),
			Name:           n,
			DataCenterID:   "datacenter-1",
			DataCenterName: "Default",
		})
	}
	return clusters
}

func containsAll(messages []string, parts ...string) bool {
	for _, m := range messages {
		found := true
		for _, p := range parts {
			if !strings.Contains(m, p) {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}

type failingCompatibilityCheck struct{}

func (failingCompatibilityCheck) Check(ctx context.Context, conn inventory.Connection, doc *mapping.Document) ([]validation.Violation, error) {
	return nil, errors.New("connection reset")
}

var _ = Describe("engine", func() {
	var (
		ctx    context.Context
		client *inventory.MemoryClient
		engine *validation.Engine
	)

	BeforeEach(func() {
		ctx = context.TODO()
		client = inventory.NewMemoryClient().
			WithSite(primaryURL, inventoryClusters("ClusterA", "ClusterB")...)
		engine = validation.NewEngine(client)
	})

	Context("run", func() {
		It("successfully validates a consistent mapping file", func() {
			verdict, err := engine.Run(ctx, newDocument(defaultClusters()...))
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeTrue())
			Expect(verdict.Messages).To(BeEmpty())
			Expect(verdict.RunID).NotTo(BeEmpty())
			Expect(verdict.Phases).To(HaveLen(3))
			for _, p := range verdict.Phases {
				Expect(p.Status).To(Equal(validation.PhasePassed))
			}

			Expect(client.ConnectCount()).To(Equal(1))
			Expect(*client.Connects()[0].URL).To(Equal(primaryURL))
			Expect(client.CloseCount()).To(Equal(1))
		})

		It("does not connect when the primary password is missing", func() {
			doc := newDocument(defaultClusters()...).WithPasswords("", "secondary-secret")

			verdict, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(containsAll(verdict.Messages, "password", "primary")).To(BeTrue())
			Expect(client.ConnectCount()).To(Equal(0))
			Expect(verdict.Phases[0].Status).To(Equal(validation.PhaseFailed))
			Expect(verdict.Phases[2].Status).To(Equal(validation.PhaseSkipped))
		})

		It("reports the missing fields of both sites together", func() {
			primary := site(primaryURL)
			primary.CAFile = nil
			secondary := site(secondaryURL)
			secondary.URL = ptr("  ")
			doc := mapping.NewDocument(
				map[mapping.Category][]mapping.NameMapping{mapping.ClusterCategory: defaultClusters()},
				nil, primary, secondary,
			).WithPasswords("primary-secret", "secondary-secret")

			verdict, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(verdict.Messages).To(Equal([]string{
				"The 'ca_file' field in the primary setup is not initialized in var file mapping",
				"The 'url' field in the secondary setup is not initialized in var file mapping",
			}))
			Expect(client.ConnectCount()).To(Equal(0))
		})

		It("reports a cluster missing in the primary setup", func() {
			client = inventory.NewMemoryClient().WithSite(primaryURL, inventoryClusters("ClusterB")...)
			engine = validation.NewEngine(client)

			verdict, err := engine.Run(ctx, newDocument(defaultClusters()...))
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(verdict.Messages).To(Equal([]string{"Entity ClusterA does not exist in primary setup"}))
			Expect(verdict.Violations).To(HaveLen(1))
			Expect(verdict.Violations[0].Kind).To(Equal(validation.EntityNotFound))
			Expect(verdict.Violations[0].Entities).To(Equal([]string{"ClusterA"}))
			Expect(verdict.Phases[2].Status).To(Equal(validation.PhaseFailed))
			Expect(client.CloseCount()).To(Equal(1))
		})

		It("does not check existence when keys are duplicated", func() {
			doc := newDocument(
				mapping.NameMapping{PrimaryName: "ClusterA", SecondaryName: "ClusterA_dr"},
				mapping.NameMapping{PrimaryName: "ClusterA", SecondaryName: "ClusterB_dr"},
			)

			verdict, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(verdict.Messages).To(Equal([]string{
				"Found the following duplicate keys in dr_cluster_mappings: ClusterA",
			}))
			Expect(client.ConnectCount()).To(Equal(0))
			Expect(verdict.Phases[1].Status).To(Equal(validation.PhaseFailed))
			Expect(verdict.Phases[2].Status).To(Equal(validation.PhaseSkipped))
		})

		It("reports both descriptor and duplicate findings", func() {
			doc := newDocument(
				mapping.NameMapping{PrimaryName: "ClusterA", SecondaryName: "ClusterA_dr"},
				mapping.NameMapping{PrimaryName: "ClusterB", SecondaryName: "ClusterA_dr"},
			).WithPasswords("primary-secret", "")

			verdict, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())

			Expect(verdict.Messages).To(Equal([]string{
				"The 'password' field in the secondary setup is not initialized in var file mapping",
				"Found the following duplicate keys in dr_cluster_mappings: ClusterA_dr",
			}))
			Expect(client.ConnectCount()).To(Equal(0))
		})

		It("fails when the primary setup cannot be reached", func() {
			engine = validation.NewEngine(inventory.NewMemoryClient())

			verdict, err := engine.Run(ctx, newDocument(defaultClusters()...))
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(verdict.Messages).To(HaveLen(1))
			Expect(verdict.Messages[0]).To(HavePrefix("Connection to primary setup has failed"))
			Expect(verdict.Messages[0]).To(ContainSubstring(primaryURL))
			Expect(verdict.Phases[2].Status).To(Equal(validation.PhaseFailed))
		})

		It("reports the missing entities together with a failed compatibility check", func() {
			client = inventory.NewMemoryClient().WithSite(primaryURL, inventoryClusters("ClusterB")...)
			engine = validation.NewEngine(client, validation.WithCompatibilityChecks(failingCompatibilityCheck{}))

			verdict, err := engine.Run(ctx, newDocument(defaultClusters()...))
			Expect(err).To(BeNil())

			Expect(verdict.OK).To(BeFalse())
			Expect(verdict.Messages).To(HaveLen(2))
			Expect(verdict.Messages[0]).To(Equal("Entity ClusterA does not exist in primary setup"))
			Expect(verdict.Messages[1]).To(HavePrefix("Connection to primary setup has failed"))
			Expect(verdict.Messages[1]).To(ContainSubstring("connection reset"))
			Expect(client.CloseCount()).To(Equal(1))
		})

		It("returns the same findings for the same input", func() {
			client = inventory.NewMemoryClient().WithSite(primaryURL, inventoryClusters("ClusterA")...)
			engine = validation.NewEngine(client)
			doc := newDocument(defaultClusters()...)

			first, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())
			second, err := engine.Run(ctx, doc)
			Expect(err).To(BeNil())

			Expect(second.OK).To(Equal(first.OK))
			Expect(second.Messages).To(Equal(first.Messages))
			Expect(second.Violations).To(Equal(first.Violations))
			Expect(second.RunID).NotTo(Equal(first.RunID))
		})
	})
})

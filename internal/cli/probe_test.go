package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("probe command", func() {
	var (
		dir    string
		out    *bytes.Buffer
		client *inventory.MemoryClient
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		out = &bytes.Buffer{}
		client = inventory.NewMemoryClient().
			WithSite(primaryURL, clusters("Default", "prod")...).
			WithSite(secondaryURL, clusters("Default", "prod_dr")...)
	})

	execute := func(args ...string) error {
		o := DefaultProbeOptions()
		o.newClient = func(provider string, timeout time.Duration) (inventory.Client, error) {
			return client, nil
		}
		cmd := newCmdProbe(o)
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{
			"--conf-file", filepath.Join(dir, "absent.conf"),
			"--var-file", writeFile(dir, "mapping_vars.yml", mappingFile),
			"--primary-password-file", writeFile(dir, "primary", "primary-secret"),
			"--secondary-password-file", writeFile(dir, "secondary", "secondary-secret"),
		}, args...))
		return cmd.ExecuteContext(context.TODO())
	}

	It("lists the clusters of the primary setup by default", func() {
		Expect(execute()).To(Succeed())

		Expect(out.String()).To(ContainSubstring("DATACENTER"))
		Expect(out.String()).To(ContainSubstring("prod"))
		Expect(out.String()).NotTo(ContainSubstring("prod_dr"))
		Expect(*client.Connects()[0].URL).To(Equal(primaryURL))
		Expect(client.CloseCount()).To(Equal(1))
	})

	It("lists the clusters of the secondary setup as json", func() {
		Expect(execute("--site", "secondary", "-o", "json")).To(Succeed())

		listed := []inventory.Cluster{}
		Expect(json.Unmarshal(out.Bytes(), &listed)).To(Succeed())
		Expect(inventory.ClusterNames(listed)).To(Equal([]string{"Default", "prod_dr"}))
		Expect(*client.Connects()[0].URL).To(Equal(secondaryURL))
	})

	It("fails when the setup cannot be reached", func() {
		client = inventory.NewMemoryClient()

		Expect(execute()).To(MatchError(ContainSubstring("connection to primary setup has failed")))
		Expect(client.CloseCount()).To(Equal(0))
	})

	It("rejects an unknown site", func() {
		Expect(execute("--site", "tertiary")).To(MatchError(ContainSubstring("site must be one of primary, secondary")))
		Expect(client.ConnectCount()).To(Equal(0))
	})
})

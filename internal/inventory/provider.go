package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/thoas/go-funk"
)

const (
	OVirtProvider   = "ovirt"
	VSphereProvider = "vsphere"
)

var Providers = []string{OVirtProvider, VSphereProvider}

// NewClient returns the client speaking the management API of provider.
func NewClient(provider string, timeout time.Duration) (Client, error) {
	if !funk.Contains(Providers, provider) {
		return nil, fmt.Errorf("unknown provider %q, must be one of %s", provider, strings.Join(Providers, ", "))
	}
	if provider == VSphereProvider {
		return NewVSphereClient(timeout), nil
	}
	return NewOVirtClient(timeout), nil
}

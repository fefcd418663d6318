package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/kubev2v/dr-mapping-validator/pkg/runid"
	"k8s.io/apimachinery/pkg/util/sets"
)

// EntityCheck verifies that the primary names of a category exist on the
// primary site. List returns the names of the entities of that kind found there.
type EntityCheck struct {
	Category mapping.Category
	List     func(ctx context.Context, conn inventory.Connection) (sets.Set[string], error)
}

// ClusterCheck matches the cluster mappings against the clusters of every data center.
func ClusterCheck() EntityCheck {
	return EntityCheck{
		Category: mapping.ClusterCategory,
		List: func(ctx context.Context, conn inventory.Connection) (sets.Set[string], error) {
			clusters, err := conn.ListClusters(ctx)
			if err != nil {
				return nil, err
			}
			return sets.New(inventory.ClusterNames(clusters)...), nil
		},
	}
}

// CompatibilityCheck inspects an open primary site connection for settings
// that prevent a failover of the mapped entities.
type CompatibilityCheck interface {
	Check(ctx context.Context, conn inventory.Connection, doc *mapping.Document) ([]Violation, error)
}

type ExistenceValidator struct {
	client inventory.Client
	checks []EntityCheck
	compat []CompatibilityCheck
}

type ExistenceOption func(*ExistenceValidator)

// WithEntityChecks replaces the default cluster check.
func WithEntityChecks(checks ...EntityCheck) ExistenceOption {
	return func(v *ExistenceValidator) {
		v.checks = checks
	}
}

// WithCompatibilityChecks replaces the default cluster version check.
func WithCompatibilityChecks(checks ...CompatibilityCheck) ExistenceOption {
	return func(v *ExistenceValidator) {
		v.compat = checks
	}
}

func NewExistenceValidator(client inventory.Client, opts ...ExistenceOption) *ExistenceValidator {
	v := &ExistenceValidator{
		client: client,
		checks: []EntityCheck{ClusterCheck()},
		compat: []CompatibilityCheck{ClusterVersionCheck{}},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate connects to the primary site once and reports every mapped entity
// missing there. A connection or listing failure is returned as
// *inventory.RemoteConnectionError together with the violations found before
// it. The connection is always closed.
func (v *ExistenceValidator) Validate(ctx context.Context, doc *mapping.Document) ([]Violation, error) {
	site := doc.Site(mapping.PrimarySite)
	siteURL := ""
	if site.URL != nil {
		siteURL = *site.URL
	}

	conn, err := v.client.Connect(ctx, site)
	if conn != nil {
		defer func() {
			if cerr := conn.Close(ctx); cerr != nil {
				runid.Logger(ctx, "validator").Warnf("failed to close connection to %s: %v", siteURL, cerr)
			}
		}()
	}
	if err != nil {
		return nil, asRemoteConnectionError(siteURL, err)
	}

	violations := []Violation{}
	for _, check := range v.checks {
		names, err := check.List(ctx, conn)
		if err != nil {
			return violations, asRemoteConnectionError(siteURL, err)
		}
		for _, row := range doc.Names(check.Category) {
			if names.Has(row.PrimaryName) {
				continue
			}
			violations = append(violations, Violation{
				Kind:     EntityNotFound,
				Site:     mapping.PrimarySite,
				Category: check.Category,
				Entities: []string{row.PrimaryName},
				Message:  fmt.Sprintf("Entity %s does not exist in %s setup", row.PrimaryName, mapping.PrimarySite),
			})
		}
	}

	for _, c := range v.compat {
		found, err := c.Check(ctx, conn, doc)
		violations = append(violations, found...)
		if err != nil {
			return violations, asRemoteConnectionError(siteURL, err)
		}
	}

	return violations, nil
}

func asRemoteConnectionError(url string, err error) *inventory.RemoteConnectionError {
	var connErr *inventory.RemoteConnectionError
	if errors.As(err, &connErr) {
		return connErr
	}
	return inventory.NewRemoteConnectionError(url, err)
}

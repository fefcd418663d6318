package mapping

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// nameRow and networkRow keep every field optional so that a missing key can be
// told apart from an empty value.
type nameRow struct {
	PrimaryName   *string `json:"primary_name" validate:"required"`
	SecondaryName *string `json:"secondary_name" validate:"required"`
}

type networkRow struct {
	PrimaryProfileName   *string `json:"primary_profile_name" validate:"required"`
	PrimaryNetworkName   *string `json:"primary_network_name" validate:"required"`
	PrimaryProfileID     *string `json:"primary_profile_id" validate:"required"`
	SecondaryProfileName *string `json:"secondary_profile_name" validate:"required"`
	SecondaryNetworkName *string `json:"secondary_network_name" validate:"required"`
	SecondaryProfileID   *string `json:"secondary_profile_id" validate:"required"`
}

type mappingFile struct {
	Clusters       []nameRow    `json:"dr_cluster_mappings" validate:"required,dive"`
	Domains        []nameRow    `json:"dr_domain_mappings" validate:"required,dive"`
	Roles          []nameRow    `json:"dr_role_mappings" validate:"required,dive"`
	AffinityGroups []nameRow    `json:"dr_affinity_group_mappings" validate:"required,dive"`
	AffinityLabels []nameRow    `json:"dr_affinity_label_mappings" validate:"required,dive"`
	Networks       []networkRow `json:"dr_network_mappings" validate:"required,dive"`

	PrimaryURL        *string `json:"dr_sites_primary_url"`
	PrimaryUsername   *string `json:"dr_sites_primary_username"`
	PrimaryCAFile     *string `json:"dr_sites_primary_ca_file"`
	SecondaryURL      *string `json:"dr_sites_secondary_url"`
	SecondaryUsername *string `json:"dr_sites_secondary_username"`
	SecondaryCAFile   *string `json:"dr_sites_secondary_ca_file"`
}

var structural = newStructuralValidator()

func newStructuralValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFile reads and decodes the mapping file at path.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mapping file %s", path)
	}
	return Load(raw)
}

// Load decodes a serialized mapping document. It only checks the shape of the
// document: every mapping key must be present and every row must carry all of
// its fields. Site descriptor keys are optional here.
func Load(raw []byte) (*Document, error) {
	var f mappingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, NewSchemaError(err)
	}

	if err := structural.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, newMissingFieldsError(verrs)
		}
		return nil, NewSchemaError(err)
	}

	names := map[Category][]NameMapping{
		ClusterCategory:       toNameMappings(f.Clusters),
		DomainCategory:        toNameMappings(f.Domains),
		RoleCategory:          toNameMappings(f.Roles),
		AffinityGroupCategory: toNameMappings(f.AffinityGroups),
		AffinityLabelCategory: toNameMappings(f.AffinityLabels),
	}

	networks := make([]NetworkMapping, 0, len(f.Networks))
	for _, n := range f.Networks {
		networks = append(networks, NetworkMapping{
			PrimaryProfileName:   *n.PrimaryProfileName,
			PrimaryNetworkName:   *n.PrimaryNetworkName,
			PrimaryProfileID:     *n.PrimaryProfileID,
			SecondaryProfileName: *n.SecondaryProfileName,
			SecondaryNetworkName: *n.SecondaryNetworkName,
			SecondaryProfileID:   *n.SecondaryProfileID,
		})
	}

	primary := SiteDescriptor{URL: f.PrimaryURL, Username: f.PrimaryUsername, CAFile: f.PrimaryCAFile}
	secondary := SiteDescriptor{URL: f.SecondaryURL, Username: f.SecondaryUsername, CAFile: f.SecondaryCAFile}

	return NewDocument(names, networks, primary, secondary), nil
}

func toNameMappings(rows []nameRow) []NameMapping {
	res := make([]NameMapping, 0, len(rows))
	for _, r := range rows {
		res = append(res, NameMapping{PrimaryName: *r.PrimaryName, SecondaryName: *r.SecondaryName})
	}
	return res
}

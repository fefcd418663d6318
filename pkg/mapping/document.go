package mapping

// Category identifies one kind of entity mapped between the two sites. The
// value is the key the category is stored under in the mapping file.
type Category string

const (
	ClusterCategory       Category = "dr_cluster_mappings"
	DomainCategory        Category = "dr_domain_mappings"
	RoleCategory          Category = "dr_role_mappings"
	AffinityGroupCategory Category = "dr_affinity_group_mappings"
	AffinityLabelCategory Category = "dr_affinity_label_mappings"
	NetworkCategory       Category = "dr_network_mappings"
)

// NameCategories are the categories whose rows are plain primary/secondary name pairs.
var NameCategories = []Category{
	ClusterCategory,
	DomainCategory,
	RoleCategory,
	AffinityGroupCategory,
	AffinityLabelCategory,
}

// Categories returns every category in report order.
func Categories() []Category {
	return append(append([]Category{}, NameCategories...), NetworkCategory)
}

// Site labels one side of the disaster recovery setup.
type Site string

const (
	PrimarySite   Site = "primary"
	SecondarySite Site = "secondary"
)

// NameMapping maps an entity on the primary site to its counterpart on the secondary site.
type NameMapping struct {
	PrimaryName   string `json:"primary_name"`
	SecondaryName string `json:"secondary_name"`
}

// NetworkMapping maps a vNIC profile attached to a network on the primary site
// to its counterpart on the secondary site.
type NetworkMapping struct {
	PrimaryProfileName   string `json:"primary_profile_name"`
	PrimaryNetworkName   string `json:"primary_network_name"`
	PrimaryProfileID     string `json:"primary_profile_id"`
	SecondaryProfileName string `json:"secondary_profile_name"`
	SecondaryNetworkName string `json:"secondary_network_name"`
	SecondaryProfileID   string `json:"secondary_profile_id"`
}

// PrimaryKey is the composite profile + network key on the primary site, as
// printed in reports.
func (n NetworkMapping) PrimaryKey() string {
	return n.PrimaryProfileName + "_" + n.PrimaryNetworkName
}

// SecondaryKey is the composite profile + network key on the secondary site, as
// printed in reports.
func (n NetworkMapping) SecondaryKey() string {
	return n.SecondaryProfileName + "_" + n.SecondaryNetworkName
}

// SiteDescriptor holds the connection parameters of one site. A nil field was
// not provided.
type SiteDescriptor struct {
	URL      *string `json:"url,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"-"`
	CAFile   *string `json:"ca_file,omitempty"`
}

// Document is the decoded mapping file. It is not modified after Load.
type Document struct {
	names     map[Category][]NameMapping
	networks  []NetworkMapping
	primary   SiteDescriptor
	secondary SiteDescriptor
}

// NewDocument builds a document from already decoded parts.
func NewDocument(names map[Category][]NameMapping, networks []NetworkMapping, primary, secondary SiteDescriptor) *Document {
	d := &Document{
		names:     make(map[Category][]NameMapping, len(NameCategories)),
		networks:  append([]NetworkMapping{}, networks...),
		primary:   primary,
		secondary: secondary,
	}
	for _, c := range NameCategories {
		d.names[c] = append([]NameMapping{}, names[c]...)
	}
	return d
}

// Names returns the rows of a name category. Callers must not modify the result.
func (d *Document) Names(c Category) []NameMapping {
	return d.names[c]
}

// Networks returns the network rows. Callers must not modify the result.
func (d *Document) Networks() []NetworkMapping {
	return d.networks
}

// Site returns the descriptor of the given site.
func (d *Document) Site(s Site) SiteDescriptor {
	if s == SecondarySite {
		return d.secondary
	}
	return d.primary
}

// WithPasswords returns a copy of the document with the site passwords set.
// An empty password leaves the field unset.
func (d *Document) WithPasswords(primary, secondary string) *Document {
	cp := *d
	cp.primary.Password = optional(primary)
	cp.secondary.Password = optional(secondary)
	return &cp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

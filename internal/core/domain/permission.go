package domain

// Wildcard matches any resource or action in a permission entry. Only the
// admin configuration carries the full {*, *} grant.
const Wildcard = "*"

// Resource identifiers used by the permission registry.
const (
	ResourceDashboard = "dashboard"
	ResourceProfile   = "profile"
	ResourceProducts  = "products"
	ResourceOrders    = "orders"
	ResourceEnquiries = "enquiries"
	ResourceFeedbacks = "feedbacks"
	ResourceOffers    = "offers"
	ResourceProjects  = "projects"
	ResourcePortfolio = "portfolio"
	ResourceReports   = "reports"
	ResourceLoyalty   = "loyalty"
	ResourceBusiness  = "business"
)

// Action identifiers used by the permission registry.
const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionRespond = "respond"
	ActionReport  = "report"
	ActionLike    = "like"
)

// PermissionEntry grants a set of actions on a single resource.
type PermissionEntry struct {
	Resource string
	Actions  []string
}

// rolePermissions is the static registry. Entries are never mutated at
// runtime; a missing role key means deny-by-default.
var rolePermissions = map[Role][]PermissionEntry{
	RoleAdmin: {
		{Resource: Wildcard, Actions: []string{Wildcard}},
	},
	RoleGeneralUser: {
		{Resource: ResourceDashboard, Actions: []string{ActionView}},
		{Resource: ResourceProfile, Actions: []string{ActionView, ActionUpdate}},
		{Resource: ResourceProducts, Actions: []string{ActionView}},
		// Enquiry inboxes belong to the dealer they target, so directory
		// users may raise enquiries but never read them back.
		{Resource: ResourceEnquiries, Actions: []string{ActionCreate}},
		{Resource: ResourceFeedbacks, Actions: []string{ActionView, ActionCreate}},
		{Resource: ResourceOffers, Actions: []string{ActionView, ActionLike}},
	},
	RolePartner: {
		{Resource: ResourceDashboard, Actions: []string{ActionView}},
		{Resource: ResourceProfile, Actions: []string{ActionView, ActionUpdate}},
		{Resource: ResourcePortfolio, Actions: []string{ActionView, ActionCreate, ActionUpdate, ActionDelete}},
		{Resource: ResourceProjects, Actions: []string{ActionView, ActionCreate, ActionUpdate}},
		{Resource: ResourceEnquiries, Actions: []string{ActionCreate}},
	},
	RoleDealer: {
		{Resource: ResourceDashboard, Actions: []string{ActionView}},
		{Resource: ResourceProfile, Actions: []string{ActionView, ActionUpdate}},
		{Resource: ResourceProducts, Actions: []string{ActionView, ActionCreate, ActionUpdate, ActionDelete}},
		{Resource: ResourceOrders, Actions: []string{ActionView, ActionCreate, ActionUpdate}},
		{Resource: ResourceEnquiries, Actions: []string{ActionView, ActionRespond, ActionCreate}},
		{Resource: ResourceFeedbacks, Actions: []string{ActionView, ActionReport}},
		{Resource: ResourceOffers, Actions: []string{ActionView, ActionCreate, ActionUpdate, ActionDelete}},
		{Resource: ResourceLoyalty, Actions: []string{ActionView}},
		{Resource: ResourceReports, Actions: []string{ActionView}},
		{Resource: ResourceBusiness, Actions: []string{ActionView, ActionUpdate}},
	},
}

// hasUniversalGrant reports whether the role holds the {*, *} entry.
func hasUniversalGrant(entries []PermissionEntry) bool {
	for _, e := range entries {
		if e.Resource != Wildcard {
			continue
		}
		for _, a := range e.Actions {
			if a == Wildcard {
				return true
			}
		}
	}
	return false
}

// HasPermission reports whether role may perform action on resource.
// Unknown roles have no permissions; the function never panics.
func HasPermission(role Role, resource, action string) bool {
	entries, ok := rolePermissions[role]
	if !ok {
		return false
	}
	if hasUniversalGrant(entries) {
		return true
	}
	for _, e := range entries {
		if e.Resource != resource && e.Resource != Wildcard {
			continue
		}
		for _, a := range e.Actions {
			if a == action || a == Wildcard {
				return true
			}
		}
	}
	return false
}

// RoleResources returns the distinct resources accessible to role.
// A role with the universal grant reports ["*"]. A literal "*" resource
// without the full grant is excluded from the listing.
func RoleResources(role Role) []string {
	entries, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	if hasUniversalGrant(entries) {
		return []string{Wildcard}
	}
	seen := make(map[string]struct{}, len(entries))
	resources := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Resource == Wildcard {
			continue
		}
		if _, dup := seen[e.Resource]; dup {
			continue
		}
		seen[e.Resource] = struct{}{}
		resources = append(resources, e.Resource)
	}
	return resources
}

// ResourceActions returns the actions role may perform on resource.
// Exact resource matches are preferred over a wildcard-resource entry;
// an empty list means no access.
func ResourceActions(role Role, resource string) []string {
	entries, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	if hasUniversalGrant(entries) {
		return []string{Wildcard}
	}
	var wildcardEntry []string
	for _, e := range entries {
		if e.Resource == resource {
			return append([]string(nil), e.Actions...)
		}
		if e.Resource == Wildcard && wildcardEntry == nil {
			wildcardEntry = e.Actions
		}
	}
	if wildcardEntry != nil {
		return append([]string(nil), wildcardEntry...)
	}
	return nil
}

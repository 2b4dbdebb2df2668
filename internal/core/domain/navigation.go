package domain

// SessionState is the input to route-tree resolution. IsLoading covers
// token refresh and bootstrap; Role is only meaningful when
// IsAuthenticated is true.
type SessionState struct {
	IsLoading       bool
	IsAuthenticated bool
	Role            Role
}

// SessionView is the resolved view kind. Exactly one view is active for
// any session state; resolution is total.
type SessionView string

const (
	ViewLoading         SessionView = "loading"
	ViewUnauthenticated SessionView = "unauthenticated"
	ViewGeneralUser     SessionView = "general_user"
	ViewPartnerDealer   SessionView = "partner_dealer"
	ViewAccessDenied    SessionView = "access_denied"
)

// ResolveView maps a session state to its view, first match wins:
// loading pre-empts role evaluation so stale auth data cannot flash the
// wrong tree during token refresh; an authenticated session with an
// unrecognized role falls through to the access-denied terminal.
func ResolveView(s SessionState) SessionView {
	switch {
	case s.IsLoading:
		return ViewLoading
	case !s.IsAuthenticated:
		return ViewUnauthenticated
	case s.Role == RoleGeneralUser:
		return ViewGeneralUser
	case s.Role == RolePartner || s.Role == RoleDealer:
		return ViewPartnerDealer
	default:
		return ViewAccessDenied
	}
}

// Route is a single named screen in a route tree.
type Route struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
	// BackDisabled marks a one-way door: the client must reject the back
	// gesture while this route is focused.
	BackDisabled bool `json:"back_disabled,omitempty"`
}

// RouteTree is the full set of screens reachable for a session view.
type RouteTree struct {
	View    SessionView `json:"view"`
	Tabs    []Route     `json:"tabs,omitempty"`
	Drawer  []Route     `json:"drawer,omitempty"`
	Stack   []Route     `json:"stack,omitempty"`
	Initial string      `json:"initial,omitempty"`
}

var onboardingStack = []Route{
	{Name: "login", Icon: IconGlyph("login")},
	{Name: "otp"},
	{Name: "signup-user-type"},
	{Name: "signup-form"},
	{Name: "signup-social"},
	{Name: "signup-otp-verify"},
	{Name: "registration-success", BackDisabled: true},
	{Name: "forgot-password"},
}

var generalUserTabs = []Route{
	{Name: "home", Icon: IconGlyph("home")},
	{Name: "search", Icon: IconGlyph("search")},
	{Name: "tools", Icon: IconGlyph("tools")},
	{Name: "messages", Icon: IconGlyph("messages")},
	{Name: "profile", Icon: IconGlyph("profile")},
}

var generalUserDrawer = []Route{
	{Name: "account", Icon: IconGlyph("account")},
	{Name: "utilities", Icon: IconGlyph("tools")},
	{Name: "notifications", Icon: IconGlyph("bell")},
	{Name: "payment-history", Icon: IconGlyph("payments")},
	{Name: "logout", Icon: IconGlyph("logout")},
}

var generalUserStack = []Route{
	{Name: "search-results"},
	{Name: "profile-detail"},
	{Name: "utility-converter"},
	{Name: "utility-calculator"},
	{Name: "payment"},
}

var partnerTabs = []Route{
	{Name: "home", Icon: IconGlyph("home")},
	{Name: "portfolio", Icon: IconGlyph("portfolio")},
	{Name: "explore", Icon: IconGlyph("search")},
	{Name: "messages", Icon: IconGlyph("messages")},
	{Name: "profile", Icon: IconGlyph("profile")},
}

var dealerTabs = []Route{
	{Name: "home", Icon: IconGlyph("home")},
	{Name: "products", Icon: IconGlyph("products")},
	{Name: "enquiries", Icon: IconGlyph("enquiries")},
	{Name: "messages", Icon: IconGlyph("messages")},
	{Name: "profile", Icon: IconGlyph("profile")},
}

// dealerDrawer lists the dealer-only secondary destinations. Partners do
// not receive this drawer.
var dealerDrawer = []Route{
	{Name: "dashboard", Icon: IconGlyph("dashboard")},
	{Name: "manage-products", Icon: IconGlyph("products")},
	{Name: "checklists"},
	{Name: "feedback"},
	{Name: "offers", Icon: IconGlyph("offers")},
	{Name: "enquiries", Icon: IconGlyph("enquiries")},
	{Name: "shortcuts"},
	{Name: "converter"},
	{Name: "videos"},
	{Name: "gallery", Icon: IconGlyph("gallery")},
	{Name: "notes"},
	{Name: "loyalty-points", Icon: IconGlyph("loyalty")},
	{Name: "market-updates"},
	{Name: "lectures"},
	{Name: "advice"},
	{Name: "projects"},
	{Name: "tenders"},
	{Name: "education"},
	{Name: "quiz"},
	{Name: "referrals"},
	{Name: "reports", Icon: IconGlyph("reports")},
	{Name: "manage-profile", Icon: IconGlyph("profile")},
	{Name: "dealership-application"},
}

// sharedDetailStack is registered once and reachable from either the
// partner or the dealer root.
var sharedDetailStack = []Route{
	{Name: "product-detail"},
	{Name: "product-form"},
	{Name: "enquiry-detail"},
	{Name: "enquiry-respond"},
	{Name: "feedback-detail"},
	{Name: "feedback-report"},
	{Name: "offer-detail"},
	{Name: "offer-form"},
	{Name: "work-detail"},
	{Name: "work-form"},
	{Name: "event-detail"},
	{Name: "event-form"},
	{Name: "gallery-item"},
	{Name: "gallery-upload"},
	{Name: "note-detail"},
	{Name: "note-form"},
	{Name: "loyalty-ledger"},
	{Name: "market-update-detail"},
	{Name: "lecture-detail"},
	{Name: "advice-detail"},
	{Name: "project-detail"},
	{Name: "project-form"},
	{Name: "tender-detail"},
	{Name: "education-detail"},
	{Name: "quiz-play"},
	{Name: "quiz-results"},
	{Name: "referral-invite"},
	{Name: "report-monthly"},
	{Name: "report-yearly"},
	{Name: "statistics"},
	{Name: "checklist-detail"},
	{Name: "video-player"},
	{Name: "profile-edit"},
	{Name: "dealership-form"},
	{Name: "chat-thread"},
}

// BuildRouteTree returns the route tree for a session state. Exactly one
// of the four trees (plus the loading placeholder) is ever returned.
func BuildRouteTree(s SessionState) RouteTree {
	switch ResolveView(s) {
	case ViewLoading:
		return RouteTree{View: ViewLoading}
	case ViewUnauthenticated:
		return RouteTree{
			View:    ViewUnauthenticated,
			Stack:   onboardingStack,
			Initial: "login",
		}
	case ViewGeneralUser:
		return RouteTree{
			View:    ViewGeneralUser,
			Tabs:    generalUserTabs,
			Drawer:  generalUserDrawer,
			Stack:   generalUserStack,
			Initial: "home",
		}
	case ViewPartnerDealer:
		tree := RouteTree{
			View:    ViewPartnerDealer,
			Stack:   sharedDetailStack,
			Initial: "home",
		}
		if s.Role == RoleDealer {
			tree.Tabs = dealerTabs
			tree.Drawer = dealerDrawer
		} else {
			tree.Tabs = partnerTabs
		}
		return tree
	default:
		return RouteTree{
			View:    ViewAccessDenied,
			Stack:   []Route{{Name: "access-denied"}},
			Initial: "access-denied",
		}
	}
}

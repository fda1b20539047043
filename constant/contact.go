package constant

// View is one of the named, policy-filtered contact listings.
type View string

const (
	ViewPublic View = "public"
	ViewMine   View = "mine"
	ViewAll    View = "all"
)

// Action is a mutation on a contact record that must pass authorization.
type Action string

const (
	ActionEditFields   Action = "edit-fields"
	ActionDelete       Action = "delete"
	ActionTogglePublic Action = "toggle-public"
	ActionToggleHidden Action = "toggle-hidden"
)

// AllowedContactFields is the whitelist of JSON keys an owner may patch on a
// contact. Anything outside this set (owner_id, is_hidden, is_user_proxy,
// id) is rejected regardless of caller.
var AllowedContactFields = map[string]struct{}{
	"name":      {},
	"surname":   {},
	"company":   {},
	"address":   {},
	"phones":    {},
	"email":     {},
	"is_public": {},
}

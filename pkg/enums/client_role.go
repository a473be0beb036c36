package enums

// ClientRole identifies a websocket connection group. Kitchen displays
// receive every order lifecycle event; table clients only events scoped
// to their registered table.
type ClientRole string

const (
	ClientRoleKitchen ClientRole = "kitchen"
	ClientRoleTable   ClientRole = "client"
)

func (r ClientRole) IsValid() bool {
	return r == ClientRoleKitchen || r == ClientRoleTable
}

func (r ClientRole) String() string {
	return string(r)
}

// ParseClientRole maps the ws query parameter onto a role, defaulting
// unknown values to the table-client role as the original handshake does.
func ParseClientRole(value string) ClientRole {
	if value == string(ClientRoleKitchen) {
		return ClientRoleKitchen
	}
	return ClientRoleTable
}

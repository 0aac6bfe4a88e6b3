package domain

// MemberRole is a group member's role. Roles are totally ordered:
// owner > editor > viewer.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

// roleRank maps roles to their position in the total order.
// Unknown roles rank below viewer.
var roleRank = map[MemberRole]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// IsValid reports whether the role is one of the known roles.
func (r MemberRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r MemberRole) String() string { return string(r) }

// ExpeditionEstado is the lifecycle state of an expedition.
type ExpeditionEstado string

const (
	ExpeditionActiva  ExpeditionEstado = "activa"
	ExpeditionCerrada ExpeditionEstado = "cerrada"
)

// IsValid reports whether the estado is one of the known states.
func (e ExpeditionEstado) IsValid() bool {
	return e == ExpeditionActiva || e == ExpeditionCerrada
}

func (e ExpeditionEstado) String() string { return string(e) }

// ExpeditionItemStatus is the per-item tracking status within an expedition.
type ExpeditionItemStatus string

const (
	ItemPorProbar  ExpeditionItemStatus = "por_probar"
	ItemProbado    ExpeditionItemStatus = "probado"
	ItemNoEncontre ExpeditionItemStatus = "no_encontre"
	ItemMeLoLlevo  ExpeditionItemStatus = "me_lo_llevo"
)

// IsValid reports whether the status is one of the known statuses.
func (s ExpeditionItemStatus) IsValid() bool {
	switch s {
	case ItemPorProbar, ItemProbado, ItemNoEncontre, ItemMeLoLlevo:
		return true
	}
	return false
}

func (s ExpeditionItemStatus) String() string { return string(s) }

// StoreTipo distinguishes physical stores from online ones.
type StoreTipo string

const (
	StoreFisica StoreTipo = "fisica"
	StoreOnline StoreTipo = "online"
)

// IsValid reports whether the tipo is one of the known types.
func (t StoreTipo) IsValid() bool {
	return t == StoreFisica || t == StoreOnline
}

func (t StoreTipo) String() string { return string(t) }

package service

// Owned is a resource with an owning user.
type Owned interface {
	OwnerID() string
}

// CanModify reports whether actorID may update or delete the resource.
// Only the owner may; an empty actor never may.
func CanModify(actorID string, resource Owned) bool {
	return actorID != "" && resource != nil && resource.OwnerID() == actorID
}

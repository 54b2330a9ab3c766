package core

import (
	"fmt"
	"strings"
)

// DeletePolicy decides what happens to dependent rows when a referenced row is deleted.
type DeletePolicy string

const (
	// DeleteRestrict refuses to delete a row that is still referenced. Default.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade deletes dependents first, in the same transaction.
	DeleteCascade DeletePolicy = "cascade"
	// DeleteIgnore deletes the row and leaves dependents dangling.
	DeleteIgnore DeletePolicy = "ignore"
)

func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch p := DeletePolicy(CleanString(s, true /* lower */)); p {
	case "":
		return DeleteRestrict, nil
	case DeleteRestrict, DeleteCascade, DeleteIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("unknown delete policy %q (want one of %s)", s,
			strings.Join([]string{string(DeleteRestrict), string(DeleteCascade), string(DeleteIgnore)}, ", "))
	}
}

// Entity names a kind of record kept by the store.
type Entity string

const (
	EntityUser       Entity = "user"
	EntityStudent    Entity = "student"
	EntityHomework   Entity = "homework"
	EntityTask       Entity = "task"
	EntityAssignment Entity = "assignment"
)

// Reference describes a foreign-key-like field: the entity it points to and,
// for users, the role the target must carry.
type Reference struct {
	Field  string
	Entity Entity
	Role   string
}

// Noun is how the target is called in error messages.
func (r Reference) Noun() string {
	if r.Role != "" {
		return r.Role
	}
	return string(r.Entity)
}

// To binds a candidate id to r.
func (r Reference) To(id int) Ref {
	return Ref{Reference: r, ID: id}
}

// Ref is a candidate id for a Reference.
type Ref struct {
	Reference
	ID int
}

// Changes maps column names to the values an update writes.
type Changes map[string]interface{}

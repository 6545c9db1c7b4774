package models

// Todo is a single list item owned by exactly one user. OwnerID is never
// serialized; clients only ever see their own items.
type Todo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     int    `json:"-"`
}

// TodoPatch is a partial update with the same nil-means-untouched rule
// as UserPatch.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

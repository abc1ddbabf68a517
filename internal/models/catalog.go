package models

// Semester is a selectable semester in the viewer context.
type Semester struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Number    int    `db:"number" json:"number"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// Branch is a selectable branch (programme of study) in the viewer context.
type Branch struct {
	ID        string `db:"id" json:"id"`
	Code      string `db:"code" json:"code"`
	Name      string `db:"name" json:"name"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

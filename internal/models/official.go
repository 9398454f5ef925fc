package models

// BrgyOfficial holds a barangay jurisdiction
type BrgyOfficial struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	Position      string `json:"position"`
	Barangay      string `json:"barangay"`
	IsActive      bool   `json:"is_active"`
	IsDeleted     bool   `json:"is_deleted"`
}

// Authorized is true for officials allowed to act on reports
func (o *BrgyOfficial) Authorized() bool {
	return o.IsActive && !o.IsDeleted
}

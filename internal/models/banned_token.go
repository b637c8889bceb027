package models

// BannedToken is a session token revoked by logout. Entries are never
// removed; tokens age out of relevance when their embedded expiry passes.
type BannedToken struct {
	BaseModel
	Token string `json:"-" gorm:"type:text;uniqueIndex;not null"`
}

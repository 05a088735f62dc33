package model

// User represents a catalogue account. Accounts are keyed by name and are
// created implicitly on first successful-looking login; the password is
// stored as submitted and compared with a constant-time byte comparison.
type User struct {
	Name     string `gorm:"primaryKey;type:varchar(120)" json:"name"`
	Password string `gorm:"not null" json:"-"` // Never expose password in JSON
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

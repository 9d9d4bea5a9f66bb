package models

import "time"

// Conversation roles as exposed over the API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// JournalMessage is one turn of the per-entry conversation. Appending rows
// here is the atomic alternative to rewriting an in-document history array:
// turns are inserted in user/model pairs inside one transaction and seq keeps
// them ordered.
type JournalMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	JournalID string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_journal_seq,priority:1;index"`
	Seq       int       `gorm:"not null;uniqueIndex:uq_journal_seq,priority:2"`
	Role      string    `gorm:"type:varchar(10);not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (JournalMessage) TableName() string {
	return "journal_messages"
}

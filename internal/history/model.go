package history

import "time"

// Status of a processed request.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Record is one processed subtitle file.
type Record struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RequestID     string    `gorm:"column:request_id;size:64;index" json:"request_id"`
	Filename      string    `gorm:"column:filename" json:"filename"`
	Format        string    `gorm:"column:format;size:8" json:"format"`
	Encoding      string    `gorm:"column:encoding;size:32" json:"encoding"`
	CueCount      int       `gorm:"column:cue_count" json:"cue_count"`
	Skipped       int       `gorm:"column:skipped" json:"skipped"`
	Dropped       int       `gorm:"column:dropped" json:"dropped"`
	TotalDuration float64   `gorm:"column:total_duration" json:"total_duration"` // seconds
	Template      string    `gorm:"column:template" json:"template"`
	Status        Status    `gorm:"column:status;size:16" json:"status"`
	ErrorKind     string    `gorm:"column:error_kind;size:32" json:"error_kind,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (*Record) TableName() string {
	return "edit_list_records"
}

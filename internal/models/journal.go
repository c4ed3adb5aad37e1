package models

// JournalMood enum shared by journal and mood entries.
type JournalMood string

const (
	MoodGreat      JournalMood = "great"
	MoodGood       JournalMood = "good"
	MoodOkay       JournalMood = "okay"
	MoodStruggling JournalMood = "struggling"
	MoodDifficult  JournalMood = "difficult"
)

// JournalEntry is a free-text patient journal entry, private by default.
type JournalEntry struct {
	BaseModel
	PatientID string      `gorm:"size:36;index:idx_journal_patient;not null" json:"patientId"`
	UserID    string      `gorm:"size:36;index;not null" json:"userId"`
	Mood      JournalMood `gorm:"size:20;not null" json:"mood"`
	Content   string      `gorm:"size:5000;not null" json:"content"`
	Tags      string      `gorm:"type:text" json:"tags,omitempty"` // comma-separated
	IsPrivate bool        `gorm:"default:true" json:"isPrivate"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// MoodEntry is a quick mood log with a 1-10 score.
type MoodEntry struct {
	BaseModel
	PatientID  string      `gorm:"size:36;index:idx_mood_patient;not null" json:"patientId"`
	UserID     string      `gorm:"size:36;index;not null" json:"userId"`
	Mood       JournalMood `gorm:"size:20;not null" json:"mood"`
	MoodScore  int         `gorm:"not null" json:"moodScore"` // 1-10
	Note       string      `gorm:"size:500" json:"note,omitempty"`
	Triggers   string      `gorm:"type:text" json:"triggers,omitempty"`   // comma-separated
	Activities string      `gorm:"type:text" json:"activities,omitempty"` // comma-separated

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

package domain

import "time"

type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	Slack bool `json:"slack"`
}

type SecuritySettings struct {
	TwoFactor      bool `json:"two_factor"`
	SessionTimeout int  `json:"session_timeout"`
}

type Profile struct {
	ID                   string
	FullName             string
	Email                string
	AvatarURL            *string
	NotificationSettings NotificationSettings
	SecuritySettings     SecuritySettings
	UpdatedAt            time.Time
}

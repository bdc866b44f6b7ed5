package domain

import "time"

type MailType string

const (
	MailApplicationAccepted MailType = "application_accepted"
	MailApplicationRejected MailType = "application_rejected"
	MailApplicationWaitlist MailType = "application_waitlist"
	MailTimesheetApproved   MailType = "timesheet_approved"
	MailTimesheetDisputed   MailType = "timesheet_disputed"
	MailTimesheetCorrected  MailType = "timesheet_corrected"
)

type MailMessage struct {
	Type MailType `json:"type"`
	To   string   `json:"to"`
	Data any      `json:"data"`
}

type ApplicationMailData struct {
	FullName   string    `json:"fullName"`
	ShiftTitle string    `json:"shiftTitle"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

type TimesheetMailData struct {
	FullName   string `json:"fullName"`
	ShiftTitle string `json:"shiftTitle"`
	Hours      string `json:"hours"`
	Reason     string `json:"reason,omitempty"`
}

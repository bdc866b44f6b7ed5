package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/config"
	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Email.SMTP.Username = "noreply@example.com"
	cfg.Email.TemplateDir = "../../templates"
	return cfg
}

// roundTrip 模拟消息经过队列之后 Data 变成 map 的情况
func roundTrip(t *testing.T, msg domain.MailMessage) domain.MailMessage {
	t.Helper()

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded domain.MailMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func TestBuildMailForEveryType(t *testing.T) {
	cfg := testConfig()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	messages := map[domain.MailType]any{
		domain.MailApplicationAccepted: domain.ApplicationMailData{FullName: "张伟", ShiftTitle: "仓库分拣", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		domain.MailApplicationRejected: domain.ApplicationMailData{FullName: "张伟", ShiftTitle: "仓库分拣", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		domain.MailApplicationWaitlist: domain.ApplicationMailData{FullName: "张伟", ShiftTitle: "仓库分拣", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		domain.MailTimesheetApproved:   domain.TimesheetMailData{FullName: "张伟", ShiftTitle: "仓库分拣", Hours: "8"},
		domain.MailTimesheetDisputed:   domain.TimesheetMailData{FullName: "张伟", ShiftTitle: "仓库分拣", Hours: "8", Reason: "迟到"},
		domain.MailTimesheetCorrected:  domain.TimesheetMailData{FullName: "张伟", ShiftTitle: "仓库分拣", Hours: "9.5"},
	}
	require.Len(t, messages, len(mailTemplates))

	for mailType, data := range messages {
		t.Run(string(mailType), func(t *testing.T) {
			msg := roundTrip(t, domain.MailMessage{Type: mailType, To: "zhangwei@example.com", Data: data})

			m, err := buildMail(cfg, &msg)
			require.NoError(t, err)
			require.Len(t, m.GetGenHeader("Subject"), 1)
		})
	}
}

func TestBuildMailUnsupportedType(t *testing.T) {
	msg := domain.MailMessage{Type: "create_user", To: "zhangwei@example.com"}

	_, err := buildMail(testConfig(), &msg)
	require.EqualError(t, err, "不支持的邮件类型 create_user")
}

func TestBuildMailInvalidRecipient(t *testing.T) {
	msg := domain.MailMessage{Type: domain.MailTimesheetApproved, To: "not an address"}

	_, err := buildMail(testConfig(), &msg)
	require.Error(t, err)
}

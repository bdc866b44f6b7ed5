package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishMail 在写操作已经提交之后调用，发送失败只记录日志
func (h *Handler) publishMail(msg *domain.MailMessage) {
	if h.mailChannel == nil || msg.To == "" {
		return
	}

	emailData, err := json.Marshal(msg)
	if err != nil {
		slog.Error("无法序列化邮件消息", "type", msg.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	messageID := uuid.NewString()
	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         emailData,
		},
	); err != nil {
		slog.Error("无法将邮件发送到消息队列", "type", msg.Type, "message_id", messageID, "error", err)
	}
}

func applicationMail(mailType domain.MailType, shift *domain.Shift, app *domain.Application) *domain.MailMessage {
	data := domain.ApplicationMailData{
		ShiftTitle: shift.Title,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	var to string
	if app.Worker != nil {
		to = app.Worker.Email
		data.FullName = app.Worker.FullName
	}

	return &domain.MailMessage{
		Type: mailType,
		To:   to,
		Data: data,
	}
}

// timesheetMail 需要额外查询员工的邮箱
func (h *Handler) timesheetMail(mailType domain.MailType, ts *domain.Timesheet, hours string) *domain.MailMessage {
	worker, err := h.repository.GetWorkerByID(ts.WorkerID)
	if err != nil {
		slog.Error("无法获取员工信息，跳过邮件通知", "worker_id", ts.WorkerID, "error", err)
		return &domain.MailMessage{Type: mailType}
	}

	data := domain.TimesheetMailData{
		FullName:   worker.FullName,
		ShiftTitle: ts.ShiftTitle,
		Hours:      hours,
	}
	if ts.DisputeReason != nil {
		data.Reason = *ts.DisputeReason
	}

	return &domain.MailMessage{
		Type: mailType,
		To:   worker.Email,
		Data: data,
	}
}

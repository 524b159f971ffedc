// FILE: internal/service/notice_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/pkg/logger"
	"doc-templates-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const NoticeTopic = "session_notices"

// NoticeDelivery pushes a rendered notice to whoever watches a session.
type NoticeDelivery interface {
	Send(sessionID uuid.UUID, payload []byte)
}

type INoticePublisher interface {
	Publish(ctx context.Context, notice dto.NoticeMessage) error
}

type noticePublisher struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewNoticePublisher(topicName string, pubSub *gochannel.GoChannel) INoticePublisher {
	return &noticePublisher{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *noticePublisher) Publish(ctx context.Context, notice dto.NoticeMessage) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

type INoticeConsumer interface {
	Consume(ctx context.Context) error
}

type noticeConsumer struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NoticeDelivery
	mailer    mailer.IEmailService // nil when SMTP is not configured
	logger    logger.ILogger
}

func NewNoticeConsumer(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery NoticeDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) INoticeConsumer {
	return &noticeConsumer{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		mailer:    emailService,
		logger:    log,
	}
}

func (c *noticeConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *noticeConsumer) processMessage(msg *message.Message) {
	// Bad payloads are acked too, redelivery would not fix them.
	defer msg.Ack()

	var notice dto.NoticeMessage
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		c.logger.Error("NOTICE", "Failed to unmarshal notice", map[string]interface{}{"error": err.Error()})
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type": "notice",
		"data": dto.NoticeResponse{Kind: notice.Kind, Message: notice.Message},
	})
	if err != nil {
		c.logger.Error("NOTICE", "Failed to marshal notice frame", map[string]interface{}{
			"session_id": notice.SessionId,
			"error":      err.Error(),
		})
		return
	}
	c.delivery.Send(notice.SessionId, frame)

	if !notice.Receipt || c.mailer == nil || notice.UserEmail == "" {
		return
	}
	if err := c.mailer.SendUpgradeReceipt(notice.UserEmail, notice.UserName, notice.Message); err != nil {
		c.logger.Warn("NOTICE", "Failed to send upgrade receipt", map[string]interface{}{
			"session_id": notice.SessionId,
			"error":      err.Error(),
		})
	}
}

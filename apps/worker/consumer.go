package main

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
)

// event types published by the LMS services
const (
	eventGradePosted       = "grade.posted"
	eventAssignmentCreated = "assignment.created"
	eventMessageReceived   = "message.received"
	eventAchievementEarned = "achievement.earned"
)

// Event is the envelope LMS services publish on the events topic. Data holds
// the type-specific payload.
type Event struct {
	Type string                 `json:"type"`
	User notification.Recipient `json:"user"`
	Data json.RawMessage        `json:"data"`
}

// Consumer turns LMS events into notifications.
type Consumer struct {
	reader   *kafka.Reader
	notifSvc *notification.Service
	logger   core.Logger
}

func NewConsumer(conf *core.Config, notifSvc *notification.Service, logger core.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        strings.Split(conf.Kafka.Brokers, ","),
			GroupID:        conf.Kafka.GroupID,
			Topic:          conf.Kafka.EventsTopic,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
		notifSvc: notifSvc,
		logger:   logger,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer func() { _ = c.reader.Close() }()

	c.logger.Info("event consumer started on topic " + c.reader.Config().Topic)
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("event consumer shutting down...")
				return nil
			}
			c.logger.Error("fetching message", err)
			time.Sleep(time.Second)
			continue
		}

		if err := c.handle(ctx, m.Value); err != nil {
			// bad events are logged and committed; redelivery cannot fix them
			c.logger.Error("handling event", err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("committing message", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, value []byte) error {
	var evt Event
	if err := json.Unmarshal(value, &evt); err != nil {
		return errors.Wrap(err, "unmarshalling event")
	}
	if evt.User.ID == "" {
		return errors.New("event has no recipient")
	}

	var (
		category notification.Category
		content  notification.Content
	)
	switch evt.Type {
	case eventGradePosted:
		var e notification.GradeEvent
		if err := c.decode(evt.Data, &e); err != nil {
			return err
		}
		category, content = notification.CategoryGrade, notification.ComposeGrade(e)
	case eventAssignmentCreated:
		var e notification.AssignmentEvent
		if err := c.decode(evt.Data, &e); err != nil {
			return err
		}
		category, content = notification.CategoryAssignment, notification.ComposeAssignment(e)
	case eventMessageReceived:
		var e notification.MessageEvent
		if err := c.decode(evt.Data, &e); err != nil {
			return err
		}
		category, content = notification.CategoryMessage, notification.ComposeMessage(e)
	case eventAchievementEarned:
		var e notification.AchievementEvent
		if err := c.decode(evt.Data, &e); err != nil {
			return err
		}
		category, content = notification.CategoryAchievement, notification.ComposeAchievement(e)
	default:
		return errors.Errorf("unknown event type %q", evt.Type)
	}

	_, err := c.notifSvc.Notify(ctx, evt.User, notification.NewNotification{
		Category: category,
		Priority: notification.PriorityMedium,
		Content:  content,
	})
	if errors.Cause(err) == notification.ErrOptedOut {
		return nil
	}
	return errors.Wrapf(err, "notifying for %s", evt.Type)
}

func (c *Consumer) decode(data json.RawMessage, payload interface{}) error {
	if err := json.Unmarshal(data, payload); err != nil {
		return errors.Wrap(err, "unmarshalling payload")
	}
	if err := core.Validate.Struct(payload); err != nil {
		return errors.Wrap(err, "validating payload")
	}
	return nil
}

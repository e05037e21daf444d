package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"harborview/internal/database"
	"harborview/internal/domain"
	"harborview/internal/metrics"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MessageService handles contact-form intake and admin moderation of
// messages.
type MessageService struct {
	db         *mongo.Database
	email      *EmailService
	adminEmail string
}

// NewMessageService creates a new message service
func NewMessageService(db *mongo.Database, email *EmailService, adminEmail string) *MessageService {
	return &MessageService{db: db, email: email, adminEmail: adminEmail}
}

// MessagePayload is the public contact-form payload
type MessagePayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Submit accepts a public contact-form submission. The record write completes
// before any notification attempt; the notification itself is fire-and-forget
// and never affects the client-visible outcome.
func (s *MessageService) Submit(c *gin.Context) {
	var p MessagePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	if err := validateMessagePayload(&p); err != nil {
		log.Printf("[MESSAGE] Submit failed: validation error: %v", err)
		respondError(c, err)
		return
	}

	msg := &domain.Message{
		Name:      strings.TrimSpace(p.Name),
		Email:     strings.ToLower(strings.TrimSpace(p.Email)),
		Company:   strings.TrimSpace(p.Company),
		Service:   strings.TrimSpace(p.Service),
		Message:   strings.TrimSpace(p.Message),
		Status:    domain.StatusPending,
		EmailSent: false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := s.db.Collection(database.CollectionMessages).InsertOne(ctx, msg)
	if err != nil {
		respondStore(c, "Failed to save message", err)
		return
	}
	msg.ID = res.InsertedID.(bson.ObjectID)

	log.Printf("[MESSAGE] Submit successful: id=%s, name=%s, email=%s", msg.ID.Hex(), msg.Name, msg.Email)
	metrics.RecordLeadSubmission("message")

	// Notification is detached from the request lifecycle on purpose: the
	// record is the durable source of truth, the email is best-effort.
	go s.notify(msg)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message received successfully. We will get back to you soon!",
		"id":      msg.ID.Hex(),
	})
}

// List returns all messages, newest first (admin only). An optional ?status=
// query narrows the result.
func (s *MessageService) List(c *gin.Context) {
	ctx, cancel := storeCtx(c)
	defer cancel()

	filter := bson.D{}
	if status := c.Query("status"); status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(database.CollectionMessages).Find(ctx, filter, opts)
	if err != nil {
		respondStore(c, "Failed to fetch messages", err)
		return
	}

	messages := []domain.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		respondStore(c, "Failed to decode messages", err)
		return
	}

	log.Printf("[MESSAGE] List successful: returned %d messages", len(messages))
	c.JSON(http.StatusOK, messages)
}

// Get returns a single message by identifier (admin only)
func (s *MessageService) Get(c *gin.Context) {
	id, ok := parseObjectID(c, "Invalid message id")
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	var msg domain.Message
	err := s.db.Collection(database.CollectionMessages).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, "Message not found")
			return
		}
		respondStore(c, "Failed to fetch message", err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// UpdateStatus sets the message status (admin only). Any enum value may
// follow any other; no transition graph is enforced.
func (s *MessageService) UpdateStatus(c *gin.Context) {
	updateLeadStatus(c, s.db.Collection(database.CollectionMessages), "Message not found")
}

// Delete removes a message (admin only)
func (s *MessageService) Delete(c *gin.Context) {
	deleteByID(c, s.db.Collection(database.CollectionMessages), "Message not found", "Message deleted successfully")
}

// notify sends the admin notification and the submitter auto-reply, then
// flips emailSent. Runs after the HTTP response; uses its own context.
func (s *MessageService) notify(msg *domain.Message) {
	if !s.email.IsEnabled() {
		log.Printf("[MESSAGE] Email disabled - notification skipped for id=%s", msg.ID.Hex())
		metrics.RecordNotification("disabled")
		return
	}

	subject := fmt.Sprintf("New Contact Form Submission from %s", msg.Name)
	if _, err := s.email.SendHTMLEmail(s.adminEmail, subject, messageNotificationHTML(msg), messageNotificationText(msg)); err != nil {
		log.Printf("[MESSAGE] Warning: failed to send notification email for id=%s: %v", msg.ID.Hex(), err)
		metrics.RecordNotification("failed")
		return
	}
	metrics.RecordNotification("sent")

	// Auto-reply failure must not block the emailSent flip.
	if _, err := s.email.SendHTMLEmail(msg.Email, "Thank you for contacting Harborview Advisors", autoReplyHTML(msg.Name), autoReplyText(msg.Name)); err != nil {
		log.Printf("[MESSAGE] Warning: failed to send auto-reply for id=%s: %v", msg.ID.Hex(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	_, err := s.db.Collection(database.CollectionMessages).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: msg.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "emailSent", Value: true},
			{Key: "updatedAt", Value: time.Now()},
		}}},
	)
	if err != nil {
		log.Printf("[MESSAGE] Warning: failed to mark emailSent for id=%s: %v", msg.ID.Hex(), err)
		return
	}
	log.Printf("[MESSAGE] Notification sent and recorded for id=%s", msg.ID.Hex())
}

// validateMessagePayload enforces required fields and formats before any
// store interaction.
func validateMessagePayload(p *MessagePayload) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return validationErr("Name is required")
	}
	if len(name) > 100 {
		return validationErr("Name must not exceed 100 characters")
	}

	email := strings.TrimSpace(p.Email)
	if email == "" {
		return validationErr("Email is required")
	}
	if !emailRegex.MatchString(email) {
		return validationErr("Invalid email address")
	}

	message := strings.TrimSpace(p.Message)
	if message == "" {
		return validationErr("Message is required")
	}
	if len(message) > 5000 {
		return validationErr("Message must not exceed 5000 characters")
	}

	if service := strings.TrimSpace(p.Service); service != "" && !domain.IsValidServiceCode(service) {
		return validationErr("Unknown service selection")
	}

	return nil
}

func messageNotificationHTML(msg *domain.Message) string {
	rows := detailRow("Name", msg.Name) +
		detailRow("Email", msg.Email) +
		detailRow("Company", msg.Company) +
		detailRow("Service", domain.ServiceName(msg.Service)) +
		detailRow("Submitted", msg.CreatedAt.Format("January 2, 2006 at 3:04 PM"))

	content := fmt.Sprintf(`<h2 style="margin: 0 0 24px 0; color: #0D3B66; font-size: 24px; font-weight: 600;">Contact Information</h2>
%s
<h3 style="margin: 30px 0 16px 0; color: #0D3B66; font-size: 18px; font-weight: 600;">Message</h3>
<div style="background-color: #F9FAFB; padding: 20px; border-radius: 8px; border-left: 4px solid #0D3B66;">
    <p style="margin: 0; color: #374151; font-size: 15px; line-height: 1.6; white-space: pre-wrap;">%s</p>
</div>
<p style="margin: 24px 0 0 0; color: #9CA3AF; font-size: 12px;">Message ID: %s</p>`,
		detailTable(rows), msg.Message, msg.ID.Hex())

	return renderLayout("New Contact Form Submission", content)
}

func messageNotificationText(msg *domain.Message) string {
	return fmt.Sprintf(`New Contact Form Submission

Name: %s
Email: %s
Company: %s
Service: %s
Submitted: %s

Message:
%s

Message ID: %s`,
		msg.Name, msg.Email, msg.Company, domain.ServiceName(msg.Service),
		msg.CreatedAt.Format("January 2, 2006 at 3:04 PM"), msg.Message, msg.ID.Hex())
}

func autoReplyHTML(name string) string {
	content := fmt.Sprintf(`<h2 style="margin: 0 0 16px 0; color: #111827; font-size: 26px; font-weight: 500; text-align: center;">Thank You for Your Inquiry</h2>
<p style="margin: 0 0 24px 0; color: #6B7280; font-size: 16px; line-height: 1.6; text-align: center;">Dear <strong style="color: #0D3B66;">%s</strong>,</p>
<div style="background-color: #F0F9FF; border-left: 4px solid #0EA5E9; padding: 20px; margin-bottom: 24px; border-radius: 4px;">
    <p style="margin: 0; color: #0C4A6E; font-size: 15px; line-height: 1.6;">We have received your message and appreciate you taking the time to contact us.</p>
</div>
<p style="margin: 0; color: #374151; font-size: 15px; line-height: 1.6;">Our team will carefully review your inquiry and get back to you within <strong>24 hours</strong>.</p>`, name)

	return renderLayout("Thank You for Contacting Harborview Advisors", content)
}

func autoReplyText(name string) string {
	return fmt.Sprintf(`Dear %s,

We have received your message and appreciate you taking the time to contact us.
Our team will review your inquiry and get back to you within 24 hours.

Best regards,
Harborview Advisors Team`, name)
}

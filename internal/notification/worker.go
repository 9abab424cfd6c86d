package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers delivering period-activation
// notifications to the browsers subscribed to the period's service.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case periodeID := <-wp.jobs:
			log.Printf("Worker %d processing periode %d", id, periodeID)
			wp.sendNotificationsForPeriode(ctx, periodeID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(periodeID int64) {
	wp.jobs <- periodeID
}

// sendNotificationsForPeriode fetches the subscriptions for the periode's
// service and notifies each of them. Periods without a service have nobody
// to notify.
func (wp *WorkerPool) sendNotificationsForPeriode(ctx context.Context, periodeID int64) {
	var periode model.Periode
	if err := wp.db.WithContext(ctx).Preload("Service").First(&periode, periodeID).Error; err != nil {
		log.Printf("Error fetching periode %d: %v", periodeID, err)
		return
	}
	if periode.ServiceID == nil {
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_service_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.service_id = ?", *periode.ServiceID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for periode %d: %v", periodeID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	serviceLabel := fmt.Sprintf("%d", *periode.ServiceID)
	if periode.Service != nil && periode.Service.Nom != "" {
		serviceLabel = periode.Service.Nom
	}

	log.Printf("Sending %d notifications for periode %d", len(subscriptions), periodeID)
	message := fmt.Sprintf("L'astreinte %q du service %s est active", periode.Description, serviceLabel)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

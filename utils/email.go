package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Govind-619/WanderSphere/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendBookingConfirmation emails the customer their booking summary. Failures
// are the caller's to log; a booking is never rolled back over email.
func SendBookingConfirmation(booking *models.Booking, experienceTitle string) error {
	config := loadEmailConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", booking.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your WanderSphere booking %s is confirmed", booking.BookingCode))

	body := fmt.Sprintf(`
		<h2>Booking confirmed!</h2>
		<p>Hi %s, your booking for <strong>%s</strong> is confirmed.</p>
		<ul>
			<li>Booking code: <strong>%s</strong></li>
			<li>Date: %s</li>
			<li>Time: %s</li>
			<li>Guests: %d</li>
			<li>Total paid: %.2f</li>
		</ul>
		<p>Show your booking code at the meeting point. See you there!</p>
	`, booking.CustomerName, experienceTitle, booking.BookingCode,
		booking.BookingDate.Format("2006-01-02"), booking.BookingTime,
		booking.Quantity, booking.Total)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendCancellationNotice emails the customer that their booking was cancelled
func SendCancellationNotice(booking *models.Booking, experienceTitle string) error {
	config := loadEmailConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", booking.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booking %s cancelled", booking.BookingCode))

	body := fmt.Sprintf(`
		<h2>Booking cancelled</h2>
		<p>Hi %s, your booking <strong>%s</strong> for %s on %s at %s has been cancelled.</p>
		<p>We hope to see you on another experience soon.</p>
	`, booking.CustomerName, booking.BookingCode, experienceTitle,
		booking.BookingDate.Format("2006-01-02"), booking.BookingTime)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

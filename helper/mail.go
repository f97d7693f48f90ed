package helper

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"hostel_manager/config"
	"hostel_manager/model"
	"hostel_manager/utils"
)

// SendBookingConfirmation mails the booking code and a check-in QR to
// the student. No-op when SMTP is not configured.
func SendBookingConfirmation(student model.Student, room model.Room, alloc model.Allocation) {
	host := config.Config("SMTP_HOST")
	if host == "" {
		return
	}
	port, err := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("invalid SMTP_PORT: %v", err)
		return
	}

	qrBytes, err := utils.GenerateQRCode(alloc.PublicCode, 400)
	if err != nil {
		log.Printf("failed to build booking QR for %s: %v", alloc.PublicCode, err)
	}

	body := fmt.Sprintf(`
		<h2>Room booking confirmed</h2>
		<p>Hi %s,</p>
		<p>Your booking <b>%s</b> for room <b>%s</b> (floor %d) is confirmed.</p>
		<p>Monthly price: %.2f. Move-in date: %s.</p>
		<p>Show the attached QR code at the front desk for check-in.</p>`,
		student.FullName, alloc.PublicCode, room.RoomNumber, room.Floor,
		room.PricePerMonth, alloc.StartDate.Format("02/01/2006"))

	m := gomail.NewMessage()
	m.SetHeader("From", config.Config("SMTP_FROM"))
	m.SetHeader("To", student.Email)
	m.SetHeader("Subject", "Hostel booking confirmation "+alloc.PublicCode)
	m.SetBody("text/html", body)
	if len(qrBytes) > 0 {
		m.Attach("booking-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}))
	}

	d := gomail.NewDialer(host, port, config.Config("SMTP_USER"), config.Config("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send booking confirmation to %s: %v", student.Email, err)
	}
}

package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	pass := os.Getenv("SMTP_PASSWORD")

	// Headers: hỗ trợ UTF-8 & HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	// Gửi mail
	err := smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{to},
		[]byte(msg),
	)

	if err != nil {
		return fmt.Errorf("gửi email thất bại: %v", err)
	}
	return nil
}

// SendInstructorWelcomeEmail gửi email thông báo tài khoản giảng viên
// kèm mật khẩu tạm do admin tạo
func SendInstructorWelcomeEmail(to, fullName, rawPassword string) error {
	subject := "Tài khoản giảng viên Learning Center"
	body := fmt.Sprintf(
		"<p>Xin chào <b>%s</b>,</p>"+
			"<p>Tài khoản giảng viên của bạn đã được tạo.</p>"+
			"<p>Email đăng nhập: <b>%s</b><br>Mật khẩu tạm: <b>%s</b></p>"+
			"<p>Vui lòng đổi mật khẩu sau khi đăng nhập lần đầu.</p>",
		fullName, to, rawPassword,
	)
	return SendEmail(to, subject, body)
}

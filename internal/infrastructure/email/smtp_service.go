package email

import (
	"context"
	"fmt"
	"net/smtp"

	"library-backend/internal/shared/types"
)

// EmailService sends circulation receipts to borrowers.
type EmailService interface {
	SendIssueReceipt(ctx context.Context, data types.IssueReceiptPayload) error
	SendReturnReceipt(ctx context.Context, data types.ReturnReceiptPayload) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService creates an EmailService over a plain SMTP relay.
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendIssueReceipt(ctx context.Context, data types.IssueReceiptPayload) error {
	subject := fmt.Sprintf("Issue receipt: %s", data.BookTitle)
	body := fmt.Sprintf(`Hello %s,

You have borrowed "%s" on %s.

It is due back on %s. Late returns are fined per day.

Happy reading,
The Library`,
		data.UserName,
		data.BookTitle,
		data.IssueDate.Format("02 Jan 2006"),
		data.DueDate.Format("02 Jan 2006"))

	return s.send(data.UserEmail, subject, body)
}

func (s *smtpEmailService) SendReturnReceipt(ctx context.Context, data types.ReturnReceiptPayload) error {
	subject := fmt.Sprintf("Return receipt: %s", data.BookTitle)

	fineLine := "Returned on time, no fine due."
	if data.DaysLate > 0 {
		fineLine = fmt.Sprintf("Returned %d day(s) late. Fine due: %s.", data.DaysLate, data.FineAmount)
	}

	body := fmt.Sprintf(`Hello %s,

We have received "%s" back on %s.

%s

Thank you,
The Library`,
		data.UserName,
		data.BookTitle,
		data.ReturnDate.Format("02 Jan 2006"),
		fineLine)

	return s.send(data.UserEmail, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))
	return smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg)
}

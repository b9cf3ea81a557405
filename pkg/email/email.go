// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya üç şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
// 3. NewNoopSender — API key yapılandırılmamışsa sessizce hiçbir şey göndermez
package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendBookingConfirmation, atölye rezervasyon isteği alındığında
	// istek sahibine onay emaili gönderir.
	SendBookingConfirmation(ctx context.Context, toEmail, name, topic string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@atelier.example)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

// SendBookingConfirmation, rezervasyon onay emaili gönderir.
func (s *resendSender) SendBookingConfirmation(ctx context.Context, toEmail, name, topic string) error {
	subject := "Your workshop request — Atelier"
	if topic != "" {
		subject = fmt.Sprintf("Your workshop request: %s — Atelier", topic)
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#020617;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#020617;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#0f172a;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">Atelier</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">Workshop request received</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Hi %s, thanks for your interest. We received your booking request
                and will reach out to confirm the date and details.
              </p>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0;">
                If you didn't request a workshop, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, name)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Atelier <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send booking confirmation email: %w", err)
	}

	return nil
}

// noopSender, email gönderimi yapılandırılmamışsa kullanılan implementasyon.
// Gönderim yerine log yazar — development'ta RESEND_API_KEY gerekmez.
type noopSender struct{}

// NewNoopSender, hiçbir şey göndermeyen EmailSender döner.
func NewNoopSender() EmailSender {
	return noopSender{}
}

func (noopSender) SendBookingConfirmation(_ context.Context, toEmail, _, _ string) error {
	log.Printf("[email] sending disabled, skipping booking confirmation to %s", toEmail)
	return nil
}

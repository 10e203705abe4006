// internal/app/system/mailer/mailer.go

// Package mailer dispatches templated notification email over SMTP.
//
// The transport connection is process-wide and lazily initialized: the
// first Send dials the server, and the client is reused until a send
// fails, after which the next Send redials. Handlers receive the Mailer
// by injection; nothing imports it as ambient state.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Email is one outbound message.
type Email struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Result reports the transport outcome of one dispatch. A non-empty
// Rejected list is a delivery failure even when other recipients were
// accepted.
type Result struct {
	Accepted []string
	Rejected []string
}

// ErrRejected is returned when the server refused one or more recipients.
var ErrRejected = errors.New("recipient rejected by mail transport")

// Config holds the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string // e.g. noreply@talentgate.in
	FromName string // e.g. TalentGate HR Team
	// Timeout bounds dialing plus the whole SMTP conversation for one
	// send. Zero means 15s.
	Timeout time.Duration
}

// Mailer is the SMTP-backed notification transport.
type Mailer struct {
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	client *smtp.Client
	conn   net.Conn
}

// New builds a Mailer. No connection is made until the first Send.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Mailer{cfg: cfg, log: logger}
}

// addr returns host:port for dialing.
func (m *Mailer) addr() string {
	return net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
}

// connectLocked dials and authenticates a fresh SMTP client.
// m.mu must be held.
func (m *Mailer) connectLocked() (*smtp.Client, net.Conn, error) {
	conn, err := net.DialTimeout("tcp", m.addr(), m.cfg.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("dial smtp %s: %w", m.addr(), err)
	}
	if err := conn.SetDeadline(time.Now().Add(m.cfg.Timeout)); err != nil {
		conn.Close()
		return nil, nil, err
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("smtp handshake: %w", err)
	}
	if m.cfg.User != "" {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				c.Close()
				return nil, nil, fmt.Errorf("starttls: %w", err)
			}
		}
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
		if err := c.Auth(auth); err != nil {
			c.Close()
			return nil, nil, fmt.Errorf("smtp auth: %w", err)
		}
	}
	return c, conn, nil
}

// Healthy probes the transport: it ensures a connection exists and the
// server answers a NOOP within the configured timeout.
func (m *Mailer) Healthy(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		c, err := m.ensureLocked()
		if err != nil {
			done <- err
			return
		}
		if err := c.Noop(); err != nil {
			m.dropLocked()
			done <- err
			return
		}
		done <- nil
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ensureLocked returns the live client, dialing if needed. The deadline
// of a cached connection is pushed forward so an idle client does not
// go stale between sends. m.mu held.
func (m *Mailer) ensureLocked() (*smtp.Client, error) {
	if m.client != nil {
		if err := m.conn.SetDeadline(time.Now().Add(m.cfg.Timeout)); err == nil {
			return m.client, nil
		}
		m.dropLocked()
	}
	c, conn, err := m.connectLocked()
	if err != nil {
		return nil, err
	}
	m.client = c
	m.conn = conn
	return c, nil
}

// dropLocked discards the cached client. m.mu held.
func (m *Mailer) dropLocked() {
	if m.client != nil {
		m.client.Close()
		m.client = nil
		m.conn = nil
	}
}

// Send dispatches one email and reports which recipients the server
// refused. A refusal returns both the partial Result and ErrRejected.
// The whole operation is bounded by the configured timeout; it never
// blocks the request path indefinitely.
func (m *Mailer) Send(ctx context.Context, e Email) (Result, error) {
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := m.send(e)
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (m *Mailer) send(e Email) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.ensureLocked()
	if err != nil {
		return Result{}, err
	}

	res, err := m.transact(c, e)
	if err != nil && len(res.Accepted) == 0 && len(res.Rejected) == 0 {
		// Connection-level failure: redial once and retry.
		m.dropLocked()
		c, cerr := m.ensureLocked()
		if cerr != nil {
			return Result{}, cerr
		}
		res, err = m.transact(c, e)
	}
	if err != nil {
		m.dropLocked()
	}
	return res, err
}

// transact runs one MAIL/RCPT/DATA exchange. Per-recipient refusals are
// collected rather than aborting, so the caller learns the full
// rejected list.
func (m *Mailer) transact(c *smtp.Client, e Email) (Result, error) {
	var res Result
	if err := c.Mail(m.cfg.From); err != nil {
		return res, fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range e.To {
		if err := c.Rcpt(rcpt); err != nil {
			m.log.Warn("recipient rejected",
				zap.String("to", rcpt),
				zap.Error(err))
			res.Rejected = append(res.Rejected, rcpt)
			continue
		}
		res.Accepted = append(res.Accepted, rcpt)
	}
	if len(res.Accepted) == 0 {
		_ = c.Reset()
		return res, ErrRejected
	}
	wc, err := c.Data()
	if err != nil {
		return res, fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(m.message(e)); err != nil {
		wc.Close()
		return res, fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return res, fmt.Errorf("smtp close: %w", err)
	}
	if len(res.Rejected) > 0 {
		return res, ErrRejected
	}
	return res, nil
}

// message renders the RFC 5322 payload. HTML body wins when both are
// set; the text body rides along as the alternative part.
func (m *Mailer) message(e Email) []byte {
	var b strings.Builder
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.cfg.FromName), m.cfg.From)
	}
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case e.HTMLBody != "" && e.TextBody != "":
		const boundary = "hirehub-alt"
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, e.TextBody)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case e.HTMLBody != "":
		fmt.Fprintf(&b, "Content-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", e.HTMLBody)
	default:
		fmt.Fprintf(&b, "Content-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", e.TextBody)
	}
	return []byte(b.String())
}

// Close shuts the cached connection down.
func (m *Mailer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropLocked()
}

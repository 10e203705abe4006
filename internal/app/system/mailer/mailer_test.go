// internal/app/system/mailer/mailer_test.go
package mailer_test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/system/mailer"
)

// smtpServer is a minimal in-process SMTP endpoint for transport tests.
// Recipients whose address contains "reject" are refused with a 550.
type smtpServer struct {
	ln    net.Listener
	conns int32
}

func startSMTPServer(t *testing.T) *smtpServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &smtpServer{ln: ln}
	go s.acceptLoop()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *smtpServer) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		atomic.AddInt32(&s.conns, 1)
		go s.serve(conn)
	}
}

func (s *smtpServer) connections() int32 {
	return atomic.LoadInt32(&s.conns)
}

func (s *smtpServer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	fmt.Fprintf(conn, "220 hirehub-test ready\r\n")
	inData := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if inData {
			if line == "." {
				inData = false
				fmt.Fprintf(conn, "250 queued\r\n")
			}
			continue
		}
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			fmt.Fprintf(conn, "250-hirehub-test\r\n250 OK\r\n")
		case strings.HasPrefix(cmd, "MAIL FROM"):
			fmt.Fprintf(conn, "250 ok\r\n")
		case strings.HasPrefix(cmd, "RCPT TO"):
			if strings.Contains(line, "reject") {
				fmt.Fprintf(conn, "550 mailbox unavailable\r\n")
			} else {
				fmt.Fprintf(conn, "250 ok\r\n")
			}
		case strings.HasPrefix(cmd, "DATA"):
			inData = true
			fmt.Fprintf(conn, "354 end data with .\r\n")
		case strings.HasPrefix(cmd, "RSET"), strings.HasPrefix(cmd, "NOOP"):
			fmt.Fprintf(conn, "250 ok\r\n")
		case strings.HasPrefix(cmd, "QUIT"):
			fmt.Fprintf(conn, "221 bye\r\n")
			return
		default:
			fmt.Fprintf(conn, "500 unrecognized\r\n")
		}
	}
}

func (s *smtpServer) config(timeout time.Duration) mailer.Config {
	addr := s.ln.Addr().(*net.TCPAddr)
	return mailer.Config{
		Host:    addr.IP.String(),
		Port:    addr.Port,
		From:    "noreply@hirehub.test",
		Timeout: timeout,
	}
}

func TestSend_DeliversToAcceptedRecipient(t *testing.T) {
	srv := startSMTPServer(t)
	m := mailer.New(srv.config(5*time.Second), zap.NewNop())
	defer m.Close()

	res, err := m.Send(context.Background(), mailer.Email{
		To:       []string{"asha@example.com"},
		Subject:  "Welcome",
		TextBody: "hello",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(res.Accepted) != 1 || res.Accepted[0] != "asha@example.com" {
		t.Errorf("accepted: got %v, want the one recipient", res.Accepted)
	}
	if len(res.Rejected) != 0 {
		t.Errorf("rejected: got %v, want none", res.Rejected)
	}
}

func TestSend_ReportsRejectedRecipients(t *testing.T) {
	srv := startSMTPServer(t)
	m := mailer.New(srv.config(5*time.Second), zap.NewNop())
	defer m.Close()

	res, err := m.Send(context.Background(), mailer.Email{
		To:       []string{"good@example.com", "reject@example.com"},
		Subject:  "Welcome",
		TextBody: "hello",
	})
	if !errors.Is(err, mailer.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if len(res.Accepted) != 1 || res.Accepted[0] != "good@example.com" {
		t.Errorf("accepted: got %v, want the good recipient", res.Accepted)
	}
	if len(res.Rejected) != 1 || res.Rejected[0] != "reject@example.com" {
		t.Errorf("rejected: got %v, want the refused recipient", res.Rejected)
	}
}

func TestSend_RefreshesIdleConnection(t *testing.T) {
	srv := startSMTPServer(t)
	m := mailer.New(srv.config(200*time.Millisecond), zap.NewNop())
	defer m.Close()

	email := mailer.Email{
		To:       []string{"asha@example.com"},
		Subject:  "Welcome",
		TextBody: "hello",
	}
	if _, err := m.Send(context.Background(), email); err != nil {
		t.Fatalf("first Send failed: %v", err)
	}

	// Sit past the dial deadline; the cached connection must have its
	// deadline pushed forward rather than going stale and redialing.
	time.Sleep(350 * time.Millisecond)

	if _, err := m.Send(context.Background(), email); err != nil {
		t.Fatalf("second Send failed: %v", err)
	}
	if n := srv.connections(); n != 1 {
		t.Errorf("connections: got %d, want the one reused connection", n)
	}
}

func TestHealthy_ProbesTransport(t *testing.T) {
	srv := startSMTPServer(t)
	m := mailer.New(srv.config(5*time.Second), zap.NewNop())
	defer m.Close()

	if err := m.Healthy(context.Background()); err != nil {
		t.Errorf("Healthy failed against a live server: %v", err)
	}
}

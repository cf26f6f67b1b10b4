// Package smtptest provides an SMTP server for tests that accepts every
// login and records delivered messages.
package smtptest

import (
	"encoding/base64"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Message is one delivered mail.
type Message struct {
	Username string
	Password string
	From     string
	To       []string
	Data     string
}

// Server listens on a loopback port until the test ends.
type Server struct {
	Host string
	Port int

	ln   net.Listener
	wg   sync.WaitGroup
	mu   sync.Mutex
	msgs []Message
}

// NewServer starts a Server and registers its shutdown with tb.Cleanup.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("smtptest: listen: %v", err)
	}
	host, port, _ := net.SplitHostPort(ln.Addr().String())
	p, _ := strconv.Atoi(port)

	s := &Server{Host: host, Port: p, ln: ln}
	s.wg.Add(1)
	go s.accept()
	tb.Cleanup(s.Close)
	return s
}

// Messages returns the messages delivered so far.
func (s *Server) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.msgs...)
}

// Close stops the listener and waits for open sessions.
func (s *Server) Close() {
	s.ln.Close()
	s.wg.Wait()
}

func (s *Server) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(conn)
		}()
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 smtptest ESMTP")

	var user, pass string
	var msg Message
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(line, " ")

		switch strings.ToUpper(verb) {
		case "EHLO":
			_ = tp.PrintfLine("250-smtptest")
			_ = tp.PrintfLine("250-AUTH PLAIN")
			_ = tp.PrintfLine("250 8BITMIME")
		case "AUTH":
			user, pass = decodePlain(arg)
			_ = tp.PrintfLine("235 2.7.0 Authentication successful")
		case "MAIL":
			msg = Message{Username: user, Password: pass, From: address(arg)}
			_ = tp.PrintfLine("250 2.1.0 OK")
		case "RCPT":
			msg.To = append(msg.To, address(arg))
			_ = tp.PrintfLine("250 2.1.5 OK")
		case "DATA":
			_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			msg.Data = strings.Join(lines, "\n")
			s.mu.Lock()
			s.msgs = append(s.msgs, msg)
			s.mu.Unlock()
			_ = tp.PrintfLine("250 2.0.0 OK")
		case "QUIT":
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return
		default:
			_ = tp.PrintfLine("250 OK")
		}
	}
}

// decodePlain reads the credentials of "PLAIN <base64>".
func decodePlain(arg string) (user, pass string) {
	_, resp, _ := strings.Cut(arg, " ")
	raw, err := base64.StdEncoding.DecodeString(resp)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(string(raw), "\x00")
	if len(parts) != 3 {
		return "", ""
	}
	return parts[1], parts[2]
}

// address extracts the mailbox from "FROM:<a@b> BODY=8BITMIME".
func address(arg string) string {
	start := strings.IndexByte(arg, '<')
	end := strings.IndexByte(arg, '>')
	if start < 0 || end < start {
		return ""
	}
	return arg[start+1 : end]
}

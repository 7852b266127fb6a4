package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type clientIPKey struct{}

// WithClientIP, isteğin IP adresini context'e ekler
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func clientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return "unknown"
}

// SecurityLogger, giriş ve kayıt olaylarını ayrı bir dosyaya loglar
type SecurityLogger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
}

// NewSecurityLogger, yeni bir güvenlik logger'ı oluşturur. Dosya açılamazsa
// olaylar atılır.
func NewSecurityLogger(path string) *SecurityLogger {
	if path == "" {
		return NewSecurityLoggerWriter(io.Discard)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.Printf("SecurityLogger - Could not open %s: %v", path, err)
		return NewSecurityLoggerWriter(io.Discard)
	}
	return &SecurityLogger{out: file, closer: file}
}

// NewSecurityLoggerWriter, olayları verilen writer'a yazan logger oluşturur
func NewSecurityLoggerWriter(w io.Writer) *SecurityLogger {
	return &SecurityLogger{out: w}
}

// LogSecurityEvent, güvenlik olayını loglar
func (sl *SecurityLogger) LogSecurityEvent(ctx context.Context, eventType, details string) {
	if sl == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] %s - %s - IP: %s\n", timestamp, eventType, details, clientIP(ctx))

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if _, err := io.WriteString(sl.out, entry); err != nil {
		log.Printf("SecurityLogger - Write error: %v", err)
	}
}

// Close, log dosyasını kapatır
func (sl *SecurityLogger) Close() error {
	if sl == nil || sl.closer == nil {
		return nil
	}
	return sl.closer.Close()
}

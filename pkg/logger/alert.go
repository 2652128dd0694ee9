package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap/zapcore"
)

// KeySendAlert marks a log entry for webhook delivery.
const KeySendAlert = "send_alert"

type AlertCore struct {
	core       zapcore.Core
	minLevel   zapcore.Level
	webhookURL string
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		core:       a.core.With(fields),
		minLevel:   a.minLevel,
		webhookURL: a.webhookURL,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return a.core.Check(entry, checkedEntry).AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	shouldSend := false
	for _, f := range fields {
		if f.Key == KeySendAlert && f.Type == zapcore.BoolType && f.Integer == 1 {
			shouldSend = true
			break
		}
	}
	if entry.Level >= a.minLevel && shouldSend {
		go a.sendWebhookAlert(entry, fields) // async so the log path never blocks
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

func (a *AlertCore) sendWebhookAlert(entry zapcore.Entry, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	payload := map[string]interface{}{
		"level":   entry.Level.CapitalString(),
		"message": entry.Message,
		"fields":  enc.Fields,
		"time":    entry.Time.Format("2006-01-02 15:04:05"),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return
	}
	resp, err := http.Post(a.webhookURL, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		fmt.Println("failed to send alert webhook:", err)
		return
	}
	resp.Body.Close()
}

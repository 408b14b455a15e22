package workflow

import (
	"errors"
	"fmt"

	"subburn/internal/segments"
)

// User-facing notices, kept in Hebrew to match the delivered subtitles.
const (
	msgDownloading      = "📥 מוריד את הסרטון..."
	msgTranscribing     = "🎧 מפענח אודיו (Whisper over Groq)..."
	msgNoSpeech         = "❌ לא אותרו דיבורים בסרטון."
	msgTooLongFormat    = "❌ הסרטון ארוך מ-%d שניות."
	msgTranslating      = "🌍 מתרגם שורות..."
	msgSerializing      = "📝 יוצר קובץ כתוביות..."
	msgRendering        = "🔥 שורף כתוביות לתוך הסרטון..."
	msgDelivering       = "📤 מעלה את הסרטון..."
	msgDeliveredCaption = "✅ הנה הסרטון עם כתוביות בעברית!"
	msgProcessingFailed = "❌ שגיאה בעיבוד הסרטון."

	// BusyNotice is sent by the control path when admission is denied.
	BusyNotice = "⏳ יש עומס — נסה שוב בעוד כמה רגעים."
)

// failureNotice maps a pipeline error to the single human-readable message
// sent to the chat.
func failureNotice(err error, maxSeconds int) string {
	switch {
	case errors.Is(err, ErrNoSpeech):
		return msgNoSpeech
	case errors.Is(err, segments.ErrTooLong):
		return fmt.Sprintf(msgTooLongFormat, maxSeconds)
	default:
		return msgProcessingFailed
	}
}

package telegram

import (
	"fmt"
	"strings"
	"time"

	"market-lens/pkg/utils"
)

// FormatErrorAlertMessage formats an upstream failure into a Markdown
// alert for the ops chat.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(t), errType, errMsg, data)
}

// FormatAISignalMessage formats a recorded AI analysis into a short
// Markdown summary for the ops chat.
func FormatAISignalMessage(t time.Time, symbol string, recommendations []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🤖 *AI Analysis Recorded: %s*\n", symbol))
	if len(recommendations) == 0 {
		sb.WriteString("💬 No explicit recommendation detected.\n")
	} else {
		for _, rec := range recommendations {
			sb.WriteString(fmt.Sprintf("💡 %s\n", rec))
		}
	}
	sb.WriteString(fmt.Sprintf("📅 %s\n", utils.PrettyDate(t)))
	return sb.String()
}

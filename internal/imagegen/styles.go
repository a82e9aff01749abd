package imagegen

import (
	"fmt"
	"strings"

	"github.com/hk4crprasad/quotes/internal/domain"
)

var styleTemplates = map[domain.ImageStyle]string{
	domain.StylePaper: `Design a square motivational quote image with a realistic paper-like texture as the background.
Use bold black serif or clean font for the quote. Highlight key parts of the text in yellow,
as if marked with a highlighter. Place the quote in the center of the image, and in the bottom-right corner,
write "—hara point" in a smaller, minimalist font. At the bottom center, include the line: "Share this if you agree."
The overall style should match an inspirational Instagram quote post with a warm, authentic, and thoughtful aesthetic.
Quote: %s`,
	domain.StyleModern: `Create a modern, minimalist square quote image with a clean gradient background.
Use a contemporary sans-serif font in dark text for the quote.
Center the quote with proper spacing and add "—hara point" in the bottom-right corner in a subtle font.
Include "Share this if you agree" at the bottom center.
Style should be clean, professional, and Instagram-ready.
Quote: %s`,
	domain.StyleMinimal: `Design a simple, elegant square quote image with a solid color or subtle texture background.
Use clean typography with the quote prominently centered.
Add "—hara point" attribution in the bottom-right and "Share this if you agree" at the bottom center.
Keep the design minimalist and focused on the text.
Quote: %s`,
}

// BuildPrompt renders the style template for the quote text. Unknown styles
// fall back to paper, matching ParseImageStyle.
func BuildPrompt(quoteText string, style domain.ImageStyle) string {
	tpl, ok := styleTemplates[style]
	if !ok {
		tpl = styleTemplates[domain.StylePaper]
	}
	return strings.TrimSpace(fmt.Sprintf(tpl, quoteText))
}

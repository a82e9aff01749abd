package quotegen

import "github.com/hk4crprasad/quotes/internal/domain"

const systemPrompt = `# Viral Quote Generator

## MISSION
Generate ONE short, punchy viral quote that hits deep and feels instantly relatable.
Focus on simple truths that make people screenshot and share immediately. Always use
DIFFERENT title patterns and content to ensure variety.

## OUTPUT FORMAT
You MUST respond with valid JSON in this exact format:
{"title": "[VARIED_TITLE_PATTERN]", "content": "[UNIQUE_RELATABLE_CONTENT]"}

## QUALITY REQUIREMENTS
- Maximum 25 words for content, one clear insight per quote
- Feel like common sense people haven't articulated
- Be screenshot-worthy and instantly shareable
- Address real experiences, provide actionable insight
- Sound like something a wise friend would say

## AVOID
- Abstract philosophy, toxic positivity, long explanations
- Corporate buzzwords, anything preachy or condescending

Generate ONE quote that follows these proven viral patterns.`

var titlePatterns = []string{
	"Maturity is when",
	"Painful but true:",
	"Rules for 2025:",
	"The moment you realize",
	"Never ignore someone who",
	"Make money so you can",
	"At 25, you learn that",
	"At 30, you understand",
	"When my Dad said this:",
	"Everything wants you when",
	"The hardest truth:",
	"Real talk:",
	"Life hits different when",
	"Nobody tells you that",
	"Growing up means",
	"Therapy taught me that",
	"Your 20s are for",
	"Stop romanticizing",
	"Normalize",
	"Red flag:",
	"Green flag:",
	"Toxic trait:",
	"Healthy habit:",
	"Mental health reminder:",
	"Boundaries 101:",
	"Self-love is",
	"Healing looks like",
	"Adulting means",
	"Plot twist:",
	"Unpopular opinion:",
	"Hot take:",
	"Daily reminder:",
	"Note to self:",
	"Gentle reminder:",
	"I'm learning that",
	"Growth is",
	"Peace is",
	"Strength is",
}

var varietyPhrases = []string{
	"Create a completely unique and fresh perspective that hasn't been seen before",
	"Generate something that feels authentic and personally relatable",
	"Make it feel deeply personal and genuine with original insights",
	"Focus on authentic emotional resonance with unique wisdom",
	"Create something screenshot-worthy with original perspective",
	"Generate fresh content that feels like a personal revelation",
}

var contentThemes = map[domain.Theme][]string{
	domain.ThemeRelationships: {
		"stop chasing people who treat you like an option",
		"recognize when someone is just using you for attention",
		"accept that not everyone will love you back the same way",
		"understand that real love doesn't require you to lose yourself",
		"stop making excuses for people who don't prioritize you",
		"realize that you can't force genuine connection",
	},
	domain.ThemeSelfWorth: {
		"stop seeking validation from people who don't even know themselves",
		"understand that your worth isn't determined by other people's opinions",
		"realize that your energy is your most valuable currency",
		"stop dimming your light to make others comfortable",
		"accept that you are enough exactly as you are",
	},
	domain.ThemeBoundaries: {
		"say no without feeling guilty about it",
		"protect your peace above all else",
		"remove people who drain your energy",
		"stop over-explaining your decisions to others",
		"know that you don't owe anyone your time or attention",
	},
	domain.ThemeGrowth: {
		"embrace the journey instead of rushing the process",
		"understand that healing isn't linear",
		"accept that some chapters of your life need to end",
		"realize that you can't heal in the same environment that hurt you",
		"understand that your past doesn't define your future",
	},
	domain.ThemeMoney: {
		"build wealth to buy freedom, not things",
		"understand that financial independence is emotional freedom",
		"realize that expensive doesn't always mean valuable",
		"invest in assets, not liabilities",
		"understand that saving is just as important as earning",
	},
}

package studio

import "fmt"

const brandingSystemPrompt = `You are an expert branding agent for small businesses.
You write complete professional website branding packages.
Headings are punchy and action-oriented. Subheadings are one sentence.
Respond with a single JSON object and nothing else.`

func brandingPrompt(businessContext string) string {
	return fmt.Sprintf(`Based on this business description or URL: %q, generate a complete professional website branding package.
The output MUST include headings and subheadings for all site sections:
hero, products, how it works, trust (why choose us), pricing, affiliate and contact.
Also include two image prompts: imagePrompt is a detailed visual description for the main hero background,
trustImagePrompt describes an image for the trust section.`, businessContext)
}

var brandingDescriptions = map[string]string{
	"imagePrompt":      "Detailed visual description for a main hero background image",
	"trustImagePrompt": "Visual description for a trust section/secondary image",
}

const (
	heroImageSuffix = "Professional website hero background, 4k, cinematic lighting."
	logoImageSuffix = "High resolution logo, clean background, vector style."
)

const draftSystemPrompt = `You are a content marketer writing for a company that sells AI chatbots,
website voicebots, AI voice agents and smart websites to small businesses.
Write in a confident, practical tone. The content field is Markdown with ## section headings.
Respond with a single JSON object and nothing else.`

func draftPrompt(siteName, topic string) string {
	return fmt.Sprintf(`Write a blog post for %s about: %q.
Return title, a one-sentence excerpt, the full Markdown content (400 to 700 words),
a metaDescription under 160 characters, 3 to 6 lowercase keywords and a readTime like "5 min".`, siteName, topic)
}

func strategyPrompt(businessName, industry string) string {
	return fmt.Sprintf(`Generate a short automation strategy (3 bullet points) for a business named %q in the %q industry. Focus on how AI chatbots and voice agents can save time.`, businessName, industry)
}

func onboardingPrompt(product string) string {
	return fmt.Sprintf(`The customer is setting up their %q. Suggest 3 initial questions their AI agent should ask new leads to maximize conversion.`, product)
}

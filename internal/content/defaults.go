package content

// GetStartedURL is the lead form every primary call to action points at.
const GetStartedURL = "https://api.leadconnectorhq.com/widget/form/BGm7Yk9CCULsw34XwYeM?notrack=true"

// AffiliateCommissionRate is the recurring partner commission.
const AffiliateCommissionRate = 0.45

// DefaultSettings returns the compiled-in site settings.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteName:               "Red Wire AI",
		PrimaryButtonColor:     "#dc2626",
		PrimaryButtonTextColor: "#ffffff",
		HeroHeading:            "Human Like Automations That Don't Sleep",
		HeroSubheading:         "We specialize in Small Business growth. Custom-built Smart Websites, Chatbots, and Voice Agents designed to capture every lead and automate your operation",
		HeroImageURL:           "https://picsum.photos/seed/redwire/1200/600",
		HeroButtonText:         "Build Your Ecosystem",
		HeroButtonLink:         GetStartedURL,
		ProductsHeading:        "Our Core Products",
		ProductsSubheading:     "Everything you need to automate lead capture, sales, and support.",
		HowItWorksHeading:      "How It Works",
		HowItWorksSubheading:   "Automating your business is easier than you think.",
		WhyChooseUsHeading:     "Why Choose Us",
		WhyChooseUsImageURL:    "https://picsum.photos/seed/tech/600/600",
		WhyChooseUsButtonText:  "View Full Ecosystem",
		WhyChooseUsButtonLink:  "/pricing",
		PricingHeading:         "Simple, Scalable Pricing",
		PricingSubheading:      "Choose the tools you need or grab the bundle for maximum power.",
		AffiliateHeading:       "Grow With Red Wire",
		AffiliateSubheading:    "The most generous partner program in the AI space.",
		ContactHeading:         "Get in Touch",
		ContactSubheading:      "Questions about automation? Our experts are here to help.",
	}
}

// InitialProducts returns the seed catalog. Each call returns a fresh copy.
func InitialProducts() []Product {
	return []Product{
		{
			ID:           ProductChatbot,
			Name:         "AI Chatbot",
			MonthlyPrice: 100,
			SetupFee:     100,
			ImageURL:     "https://images.unsplash.com/photo-1531746790731-6c087fecd05a?q=80&w=1000&auto=format&fit=crop",
			Features: []string{
				"Unlimited conversations",
				"Natural language AI",
				"Lead capture forms",
				"Custom training",
				"Widget customization",
				"Email notifications",
				"Basic analytics",
				"Email support",
			},
			Description: "Transform your website visitors into customers with an intelligent AI that knows your business inside out.",
		},
		{
			ID:           ProductVoicebot,
			Name:         "Website Voicebot",
			MonthlyPrice: 150,
			SetupFee:     125,
			ImageURL:     "https://images.unsplash.com/photo-1589254065878-42c9da997008?q=80&w=1000&auto=format&fit=crop",
			Features: []string{
				"Everything in Chatbot",
				"Natural voice responses",
				"Multi-language voice",
				"Voice-to-text logs",
				"Accessibility features",
				"Priority support",
				"Advanced analytics",
			},
			Description: "Allow your visitors to talk directly to your website. The future of browsing is conversational.",
		},
		{
			ID:           ProductVoiceAgent,
			Name:         "AI Voice Agent",
			MonthlyPrice: 200,
			SetupFee:     150,
			ImageURL:     "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?q=80&w=1000&auto=format&fit=crop",
			Features: []string{
				"Everything in Voicebot",
				"Inbound call handling",
				"Outbound call campaigns",
				"Call transcription",
				"CRM integrations",
				"Appointment scheduling",
				"Call routing",
				"Dedicated support",
				"Bilingual",
			},
			Description: "A full-time sales representative that never sleeps. Handles calls, books meetings, and closes leads.",
		},
		{
			ID:           ProductSmartWebsite,
			Name:         "Smart Website",
			MonthlyPrice: 300,
			SetupFee:     200,
			ImageURL:     "https://images.unsplash.com/photo-1460925895917-afdab827c52f?q=80&w=1000&auto=format&fit=crop",
			Features: []string{
				"Responsive design",
				"Chatbot included (voicebot upgrade)",
				"AI-powered website",
				"Lead Capture & Lead Generation",
				"SEO optimization",
				"Custom integrations",
				"24/7 priority support",
			},
			Description: "The ultimate automation ecosystem. A high-converting website pre-loaded with every AI tool we offer.",
		},
	}
}

// InitialPosts returns the seed blog articles.
func InitialPosts() []BlogPost {
	return []BlogPost{
		{
			ID:              "rise-of-voice-ai",
			Title:           "The Rise of Voice AI in 2024",
			Date:            "Oct 12, 2024",
			Excerpt:         "Why every small business needs a voice agent to handle inbound lead qualification.",
			Content:         "Voice agents now answer, qualify and book inbound callers around the clock.\n\n## Why it matters\n\nMissed calls are missed revenue.",
			Img:             "https://picsum.photos/seed/voice/600/400",
			Status:          PostPublished,
			MetaDescription: "How voice AI agents qualify inbound leads for small businesses.",
			Keywords:        []string{"voice ai", "lead qualification"},
			ReadTime:        "4 min",
		},
		{
			ID:              "ghl-integration-masterclass",
			Title:           "GHL Integration Masterclass",
			Date:            "Oct 08, 2024",
			Excerpt:         "How to sync your AI chatbots with your CRM for seamless lead follow-ups.",
			Content:         "Connect your chatbot to your CRM so every captured lead starts a follow-up sequence.",
			Img:             "https://picsum.photos/seed/ghl/600/400",
			Status:          PostPublished,
			MetaDescription: "Sync AI chatbots with your CRM for automatic lead follow-up.",
			Keywords:        []string{"crm", "chatbot", "integration"},
			ReadTime:        "6 min",
		},
		{
			ID:              "maximizing-affiliate-earnings",
			Title:           "Maximizing Affiliate Earnings",
			Date:            "Oct 02, 2024",
			Excerpt:         "Strategies for promoting Red Wire AI to your local business network.",
			Content:         "Partners earn 45% recurring commission. Start with the businesses you already know.",
			Img:             "https://picsum.photos/seed/earn/600/400",
			Status:          PostPublished,
			MetaDescription: "Strategies for growing recurring affiliate commission.",
			Keywords:        []string{"affiliate", "commission"},
			ReadTime:        "3 min",
		},
	}
}

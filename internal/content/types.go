package content

import "errors"

var (
	// ErrUnknownField is returned when a field name does not exist on the record.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownProduct is returned for a product id outside the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrInvalidValue is returned when a value cannot be parsed for its field.
	ErrInvalidValue = errors.New("invalid value")
)

// ProductType is one of the fixed catalog identifiers.
type ProductType string

const (
	ProductChatbot      ProductType = "chatbot"
	ProductVoicebot     ProductType = "voicebot"
	ProductVoiceAgent   ProductType = "voice_agent"
	ProductSmartWebsite ProductType = "smart_website"
)

// ProductTypes lists the catalog in display order.
var ProductTypes = []ProductType{ProductChatbot, ProductVoicebot, ProductVoiceAgent, ProductSmartWebsite}

// SiteSettings holds every editable piece of site copy, brand styling and
// the three custom code blobs. The JSON keys are the persisted format.
type SiteSettings struct {
	// Global / brand
	SiteName     string `json:"siteName"`
	LogoImageURL string `json:"logoImageUrl"`

	// Custom code injection
	HeaderCode string `json:"headerCode"`
	BodyCode   string `json:"bodyCode"`
	FooterCode string `json:"footerCode"`

	// Global button style
	PrimaryButtonColor     string `json:"primaryButtonColor"`
	PrimaryButtonTextColor string `json:"primaryButtonTextColor"`

	// Home page
	HeroHeading    string `json:"heroHeading"`
	HeroSubheading string `json:"heroSubheading"`
	HeroImageURL   string `json:"heroImageUrl"`
	HeroButtonText string `json:"heroButtonText"`
	HeroButtonLink string `json:"heroButtonLink"`

	ProductsHeading    string `json:"productsHeading"`
	ProductsSubheading string `json:"productsSubheading"`

	HowItWorksHeading    string `json:"howItWorksHeading"`
	HowItWorksSubheading string `json:"howItWorksSubheading"`

	WhyChooseUsHeading    string `json:"whyChooseUsHeading"`
	WhyChooseUsImageURL   string `json:"whyChooseUsImageUrl"`
	WhyChooseUsButtonText string `json:"whyChooseUsButtonText"`
	WhyChooseUsButtonLink string `json:"whyChooseUsButtonLink"`

	// Pricing page
	PricingHeading    string `json:"pricingHeading"`
	PricingSubheading string `json:"pricingSubheading"`

	// Affiliate page
	AffiliateHeading    string `json:"affiliateHeading"`
	AffiliateSubheading string `json:"affiliateSubheading"`

	// Contact page
	ContactHeading    string `json:"contactHeading"`
	ContactSubheading string `json:"contactSubheading"`
}

// CodeBlobs are the operator-supplied snippets for the three injection points.
type CodeBlobs struct {
	Header string
	Body   string
	Footer string
}

// Blobs returns the settings' custom code snippets.
func (s SiteSettings) Blobs() CodeBlobs {
	return CodeBlobs{Header: s.HeaderCode, Body: s.BodyCode, Footer: s.FooterCode}
}

// Product is one catalog entry.
type Product struct {
	ID           ProductType `json:"id"`
	Name         string      `json:"name"`
	MonthlyPrice float64     `json:"monthlyPrice"`
	SetupFee     float64     `json:"setupFee"`
	Features     []string    `json:"features"`
	Description  string      `json:"description"`
	ImageURL     string      `json:"imageUrl,omitempty"`
}

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// BlogPost is a single article.
type BlogPost struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            string     `json:"date"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Img             string     `json:"img"`
	Status          PostStatus `json:"status"`
	MetaDescription string     `json:"metaDescription"`
	Keywords        []string   `json:"keywords"`
	ReadTime        string     `json:"readTime"`
}

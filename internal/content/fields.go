package content

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FieldKind tells the console which input to render.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindLong  FieldKind = "textarea"
	KindColor FieldKind = "color"
	KindImage FieldKind = "image"
	KindLink  FieldKind = "link"
	KindCode  FieldKind = "code"
)

// Field describes one editable settings field.
type Field struct {
	Key     string
	Label   string
	Section string
	Kind    FieldKind
}

// Sections in the order the console shows them.
var Sections = []string{"brand", "code", "hero", "products", "how-it-works", "why-choose-us", "pricing", "affiliate", "contact"}

var settingsFields = []Field{
	{"siteName", "Site name", "brand", KindText},
	{"logoImageUrl", "Logo", "brand", KindImage},
	{"primaryButtonColor", "Button color", "brand", KindColor},
	{"primaryButtonTextColor", "Button text color", "brand", KindColor},
	{"headerCode", "Header code", "code", KindCode},
	{"bodyCode", "Body start code", "code", KindCode},
	{"footerCode", "Body end code", "code", KindCode},
	{"heroHeading", "Heading", "hero", KindText},
	{"heroSubheading", "Subheading", "hero", KindLong},
	{"heroImageUrl", "Image", "hero", KindImage},
	{"heroButtonText", "Button text", "hero", KindText},
	{"heroButtonLink", "Button link", "hero", KindLink},
	{"productsHeading", "Heading", "products", KindText},
	{"productsSubheading", "Subheading", "products", KindLong},
	{"howItWorksHeading", "Heading", "how-it-works", KindText},
	{"howItWorksSubheading", "Subheading", "how-it-works", KindLong},
	{"whyChooseUsHeading", "Heading", "why-choose-us", KindText},
	{"whyChooseUsImageUrl", "Image", "why-choose-us", KindImage},
	{"whyChooseUsButtonText", "Button text", "why-choose-us", KindText},
	{"whyChooseUsButtonLink", "Button link", "why-choose-us", KindLink},
	{"pricingHeading", "Heading", "pricing", KindText},
	{"pricingSubheading", "Subheading", "pricing", KindLong},
	{"affiliateHeading", "Heading", "affiliate", KindText},
	{"affiliateSubheading", "Subheading", "affiliate", KindLong},
	{"contactHeading", "Heading", "contact", KindText},
	{"contactSubheading", "Subheading", "contact", KindLong},
}

// settingsIndex maps a JSON key to the struct field index.
var settingsIndex = func() map[string]int {
	idx := make(map[string]int)
	t := reflect.TypeOf(SiteSettings{})
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if tag != "" && tag != "-" {
			idx[tag] = i
		}
	}
	return idx
}()

// Fields returns the editable settings fields, grouped by section.
func Fields() []Field {
	out := make([]Field, len(settingsFields))
	copy(out, settingsFields)
	return out
}

// FieldsIn returns the fields of one section.
func FieldsIn(section string) []Field {
	var out []Field
	for _, f := range settingsFields {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// HasField reports whether key names a settings field.
func HasField(key string) bool {
	_, ok := settingsIndex[key]
	return ok
}

// Get returns the value of the field with the given JSON key.
func (s SiteSettings) Get(key string) (string, error) {
	i, ok := settingsIndex[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return reflect.ValueOf(s).Field(i).String(), nil
}

// Set assigns value to the field with the given JSON key.
func (s *SiteSettings) Set(key, value string) error {
	i, ok := settingsIndex[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	reflect.ValueOf(s).Elem().Field(i).SetString(value)
	return nil
}

// Slug returns the URL path segment for a product type.
func (p ProductType) Slug() string {
	return strings.ReplaceAll(string(p), "_", "-")
}

// Valid reports whether p is part of the catalog.
func (p ProductType) Valid() bool {
	for _, t := range ProductTypes {
		if t == p {
			return true
		}
	}
	return false
}

// ProductTypeFromSlug resolves a URL segment ("voice-agent") or id ("voice_agent").
func ProductTypeFromSlug(slug string) (ProductType, bool) {
	p := ProductType(strings.ReplaceAll(slug, "-", "_"))
	return p, p.Valid()
}

// Set assigns a product field from its string form. The id is immutable.
func (p *Product) Set(field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "imageUrl":
		p.ImageURL = value
	case "monthlyPrice", "setupFee":
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidValue, field)
		}
		if field == "monthlyPrice" {
			p.MonthlyPrice = n
		} else {
			p.SetupFee = n
		}
	case "features":
		var features []string
		for _, line := range strings.Split(value, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				features = append(features, line)
			}
		}
		p.Features = features
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// FindProduct returns the product with the given id.
func FindProduct(products []Product, id ProductType) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ValidateProducts checks that a product list holds only catalog ids, each at most once.
func ValidateProducts(products []Product) error {
	seen := make(map[ProductType]bool, len(products))
	for _, p := range products {
		if !p.ID.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownProduct, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product %q", p.ID)
		}
		seen[p.ID] = true
	}
	if len(products) != len(ProductTypes) {
		return fmt.Errorf("expected %d products, got %d", len(ProductTypes), len(products))
	}
	return nil
}

// CloneProducts deep-copies a product list.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// ClonePosts deep-copies a post list.
func ClonePosts(posts []BlogPost) []BlogPost {
	out := make([]BlogPost, len(posts))
	for i, p := range posts {
		p.Keywords = append([]string(nil), p.Keywords...)
		out[i] = p
	}
	return out
}

// FindPost returns the post with the given id.
func FindPost(posts []BlogPost, id string) (BlogPost, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return BlogPost{}, false
}

// Published filters posts down to the published ones, preserving order.
func Published(posts []BlogPost) []BlogPost {
	var out []BlogPost
	for _, p := range posts {
		if p.Status == PostPublished {
			out = append(out, p)
		}
	}
	return out
}

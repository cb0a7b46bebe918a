package content

import (
	"errors"
	"testing"
)

func TestEveryFieldHasADefault(t *testing.T) {
	optional := map[string]bool{
		"logoImageUrl": true,
		"headerCode":   true,
		"bodyCode":     true,
		"footerCode":   true,
	}
	def := DefaultSettings()
	for _, f := range Fields() {
		v, err := def.Get(f.Key)
		if err != nil {
			t.Fatalf("Get(%q): %v", f.Key, err)
		}
		if v == "" && !optional[f.Key] {
			t.Errorf("field %q has no default", f.Key)
		}
	}
}

func TestFieldsCoverEverySetting(t *testing.T) {
	listed := make(map[string]bool)
	for _, f := range Fields() {
		listed[f.Key] = true
	}
	for key := range settingsIndex {
		if !listed[key] {
			t.Errorf("settings key %q missing from Fields()", key)
		}
	}
}

func TestSettingsSetGet(t *testing.T) {
	s := DefaultSettings()
	if err := s.Set("heroHeading", "New Heading"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.HeroHeading != "New Heading" {
		t.Errorf("HeroHeading = %q", s.HeroHeading)
	}
	got, _ := s.Get("heroHeading")
	if got != "New Heading" {
		t.Errorf("Get = %q", got)
	}

	if err := s.Set("nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set unknown: err = %v, want ErrUnknownField", err)
	}
}

func TestBlobs(t *testing.T) {
	s := SiteSettings{HeaderCode: "h", BodyCode: "b", FooterCode: "f"}
	b := s.Blobs()
	if b.Header != "h" || b.Body != "b" || b.Footer != "f" {
		t.Errorf("Blobs = %+v", b)
	}
}

func TestProductSet(t *testing.T) {
	p := InitialProducts()[0]

	if err := p.Set("monthlyPrice", "129.5"); err != nil {
		t.Fatalf("Set price: %v", err)
	}
	if p.MonthlyPrice != 129.5 {
		t.Errorf("MonthlyPrice = %v", p.MonthlyPrice)
	}
	if err := p.Set("setupFee", "-1"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative fee: err = %v", err)
	}
	if err := p.Set("features", "One\n\n  Two  \n"); err != nil {
		t.Fatalf("Set features: %v", err)
	}
	if len(p.Features) != 2 || p.Features[1] != "Two" {
		t.Errorf("Features = %v", p.Features)
	}
	if err := p.Set("id", "voicebot"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("id must be immutable, err = %v", err)
	}
}

func TestProductSlugs(t *testing.T) {
	cases := map[string]ProductType{
		"chatbot":       ProductChatbot,
		"voice-agent":   ProductVoiceAgent,
		"smart_website": ProductSmartWebsite,
	}
	for slug, want := range cases {
		got, ok := ProductTypeFromSlug(slug)
		if !ok || got != want {
			t.Errorf("ProductTypeFromSlug(%q) = %q, %v", slug, got, ok)
		}
	}
	if _, ok := ProductTypeFromSlug("toaster"); ok {
		t.Error("expected unknown slug to fail")
	}
	if ProductVoiceAgent.Slug() != "voice-agent" {
		t.Errorf("Slug = %q", ProductVoiceAgent.Slug())
	}
}

func TestValidateProducts(t *testing.T) {
	if err := ValidateProducts(InitialProducts()); err != nil {
		t.Errorf("seed catalog invalid: %v", err)
	}

	dup := InitialProducts()
	dup[1].ID = dup[0].ID
	if err := ValidateProducts(dup); err == nil {
		t.Error("expected duplicate id error")
	}

	unknown := InitialProducts()
	unknown[0].ID = "toaster"
	if err := ValidateProducts(unknown); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("err = %v, want ErrUnknownProduct", err)
	}

	if err := ValidateProducts(InitialProducts()[:2]); err == nil {
		t.Error("expected cardinality error")
	}
}

func TestCloneProductsIsDeep(t *testing.T) {
	orig := InitialProducts()
	clone := CloneProducts(orig)
	clone[0].Features[0] = "changed"
	if orig[0].Features[0] == "changed" {
		t.Error("clone shares feature slice with original")
	}
}

func TestPublished(t *testing.T) {
	posts := InitialPosts()
	posts[1].Status = PostDraft
	got := Published(posts)
	if len(got) != 2 || got[0].ID != posts[0].ID || got[1].ID != posts[2].ID {
		t.Errorf("Published = %v", got)
	}
}

package site

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/notifications"
)

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.Split(f.Tag.Get("form"), ",")[0]
	})
	return v
}()

// checkoutRequest is the simulated payment form.
type checkoutRequest struct {
	FirstName   string `form:"firstName" validate:"required"`
	LastName    string `form:"lastName" validate:"required"`
	CompanyName string `form:"companyName" validate:"required"`
	Industry    string `form:"industry" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	CardNumber  string `form:"cardNumber" validate:"required"`
	Expiry      string `form:"expiry" validate:"required"`
	CVC         string `form:"cvc" validate:"required"`
	Country     string `form:"country" validate:"required"`
}

type contactRequest struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required"`
}

// decodeForm fills the string fields of dst from values by their form tag.
func decodeForm(values url.Values, dst any) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("form"), ",")[0]
		if name == "" || v.Field(i).Kind() != reflect.String {
			continue
		}
		v.Field(i).SetString(strings.TrimSpace(values.Get(name)))
	}
}

// fieldErrors validates req and returns a message per failing form field.
func fieldErrors(req any) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required"
		case "email":
			out[fe.Field()] = "Enter a valid email address"
		default:
			out[fe.Field()] = "Invalid value"
		}
	}
	return out
}

// form carries submitted values and errors back into a template.
type form struct {
	values url.Values
	errors map[string]string
}

func (f form) Value(name string) string { return f.values.Get(name) }
func (f form) Error(name string) string { return f.errors[name] }

type checkoutPage struct {
	Plan content.Product
	Form form
}

// plan resolves the ?plan= id, falling back to the first product.
func (s *Site) plan(r *http.Request) (content.Product, bool) {
	products := s.state.Products()
	if len(products) == 0 {
		return content.Product{}, false
	}
	if id := r.URL.Query().Get("plan"); id != "" {
		if p, ok := content.FindProduct(products, content.ProductType(id)); ok {
			return p, true
		}
	}
	return products[0], true
}

func (s *Site) handleCheckout(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.plan(r)
	if !ok {
		http.Redirect(w, r, "/pricing", http.StatusFound)
		return
	}
	s.render(w, http.StatusOK, "checkout", s.newPage(r, "Checkout", checkoutPage{Plan: plan}))
}

func (s *Site) handleCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.plan(r)
	if !ok {
		http.Redirect(w, r, "/pricing", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var req checkoutRequest
	decodeForm(r.PostForm, &req)
	if errs := fieldErrors(&req); errs != nil {
		data := checkoutPage{Plan: plan, Form: form{values: r.PostForm, errors: errs}}
		s.render(w, http.StatusUnprocessableEntity, "checkout", s.newPage(r, "Checkout", data))
		return
	}

	// Simulated payment processing. The sale is announced even if the
	// buyer navigates away.
	wait(r.Context(), s.opts.CheckoutDelay)
	s.notify("System: New Sale! "+plan.Name+" ecosystem deployed. Admin SMS dispatched.", notifications.TypeSale)
	s.logger.Info().Str("plan", string(plan.ID)).Str("company", req.CompanyName).Msg("checkout completed")

	q := url.Values{}
	q.Set("business", req.CompanyName)
	q.Set("industry", req.Industry)
	http.Redirect(w, r, "/onboarding?"+q.Encode(), http.StatusSeeOther)
}

type onboardingPage struct {
	Step         int
	BusinessName string
	Website      string
	Industry     string
	Strategy     string
	Questions    []string
}

const (
	defaultIndustry = "Real Estate"
	// onboardingProduct is the agent the suggested questions are written for.
	onboardingProduct = "AI Voice Agent"
)

func (s *Site) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	step, err := strconv.Atoi(q.Get("step"))
	if err != nil || step < 1 || step > 4 {
		step = 1
	}
	// Step 3 is only reachable by submitting step 2.
	if step == 3 {
		step = 2
	}
	data := onboardingPage{
		Step:         step,
		BusinessName: q.Get("business"),
		Industry:     q.Get("industry"),
	}
	if data.Industry == "" {
		data.Industry = defaultIndustry
	}
	s.render(w, http.StatusOK, "onboarding", s.newPage(r, "Onboarding", data))
}

func (s *Site) handleOnboardingSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := onboardingPage{
		Step:         3,
		BusinessName: strings.TrimSpace(r.PostForm.Get("businessName")),
		Website:      strings.TrimSpace(r.PostForm.Get("website")),
		Industry:     strings.TrimSpace(r.PostForm.Get("industry")),
	}
	if data.Industry == "" {
		data.Industry = defaultIndustry
	}
	if data.BusinessName == "" {
		data.Step = 2
		s.render(w, http.StatusUnprocessableEntity, "onboarding", s.newPage(r, "Onboarding", data))
		return
	}
	if s.assistant != nil {
		data.Strategy = s.assistant.Strategy(r.Context(), data.BusinessName, data.Industry)
		data.Questions = s.assistant.OnboardingQuestions(r.Context(), onboardingProduct)
	}
	s.render(w, http.StatusOK, "onboarding", s.newPage(r, "Onboarding", data))
}

type affiliatePage struct {
	Commission float64
}

const affiliateFlash = "Application Submitted! Our team will review your application and text you within 24 hours."

func (s *Site) handleAffiliate(w http.ResponseWriter, r *http.Request) {
	data := affiliatePage{Commission: content.AffiliateCommissionRate}
	s.render(w, http.StatusOK, "affiliate", s.newPage(r, "Affiliate Program", data))
}

func (s *Site) handleAffiliateSubmit(w http.ResponseWriter, r *http.Request) {
	wait(r.Context(), s.opts.AffiliateDelay)
	s.notify("Partner Alert: New affiliate application received. Admin text notification sent.", notifications.TypeAffiliate)

	p := s.newPage(r, "Affiliate Program", affiliatePage{Commission: content.AffiliateCommissionRate})
	p.Flash = affiliateFlash
	s.render(w, http.StatusOK, "affiliate", p)
}

type contactPage struct {
	Form form
}

const contactFlash = "Thanks for reaching out! Our team will get back to you shortly."

func (s *Site) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "contact", s.newPage(r, "Contact", contactPage{}))
}

func (s *Site) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var req contactRequest
	decodeForm(r.PostForm, &req)
	if errs := fieldErrors(&req); errs != nil {
		data := contactPage{Form: form{values: r.PostForm, errors: errs}}
		s.render(w, http.StatusUnprocessableEntity, "contact", s.newPage(r, "Contact", data))
		return
	}
	s.notify("New inquiry from "+req.Name+" ("+req.Email+").", notifications.TypeInfo)

	p := s.newPage(r, "Contact", contactPage{})
	p.Flash = contactFlash
	s.render(w, http.StatusOK, "contact", p)
}

func (s *Site) notify(message string, typ notifications.Type) {
	if s.notifier != nil {
		s.notifier.Notify(message, typ)
	}
}
